// Package fixturecheck keeps a directory of test fixtures and a declared
// catalog of tests in one-to-one correspondence, and runs one test body per
// fixture.
//
// An Index enumerates the files under a root whose names match a pattern and
// derives a stable identifier for each: the capture group of the pattern (or
// the name without its extension) prefixed by the relative directory. A
// Catalog maps identifiers to test bodies. Verify compares the two sets and
// reports every fixture without a test and every test without a fixture. A
// Runner executes catalog entries and reports each outcome independently.
//
//	cat := fixturecheck.MustCatalog(
//	    fixturecheck.EntriesFor(doTest, "emptyImportDirective", "nested/insideLambda")...,
//	)
//	suite, err := fixturecheck.NewSuite(fixturecheck.Config{
//	    Root:      "testdata/insertBeforeExtractFunction",
//	    Pattern:   regexp.MustCompile(`^(.+)\.kt$`),
//	    Recursive: true,
//	}, cat)
//	if err != nil {
//	    return err
//	}
//	report, err := suite.Execute(ctx)
//
// Inside go test, package fixturetest turns a suite into subtests.
package fixturecheck
