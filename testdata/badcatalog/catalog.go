package badcatalog

import (
	"context"
	"os"

	"github.com/goatx/fixturecheck"
)

func doTest(context.Context, string) error { return nil }

var ids = []string{"a", "b"}

var Entries = []fixturecheck.Entry{
	fixturecheck.NewEntry(os.Getenv("FIXTURE"), doTest),
	fixturecheck.NewEntry("dup", doTest),
	fixturecheck.NewEntry("dup", doTest),
}

var More = fixturecheck.EntriesFor(doTest, ids...)
