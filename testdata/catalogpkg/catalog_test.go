package catalogpkg_test

import (
	"context"

	fc "github.com/goatx/fixturecheck"
)

var nested = fc.NewEntry("nested/"+"insideLambda", func(context.Context, string) error { return nil })
