package catalogpkg

import (
	"context"

	"github.com/goatx/fixturecheck"
)

const manyImports = "manyImports"

func doTest(context.Context, string) error { return nil }

var Catalog = fixturecheck.MustCatalog(append(
	fixturecheck.EntriesFor(doTest,
		"emptyImportDirective",
		"emptyImportDirective2",
		"emptyPackageDirective",
	),
	fixturecheck.NewEntry("emptyPackageDirective2", doTest),
	fixturecheck.NewEntry(manyImports, doTest),
)...)
