package dataset_test

import (
	"testing"
	"time"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
)

func TestParseTagArchiveDateOnlyIsEndOfDay(t *testing.T) {
	tag, err := dataset.ParseTag("2023-02-09")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(tag.Kind, dataset.TagArchive))
	qt.Assert(t, qt.Equals(tag.Time.Hour(), 23))
	qt.Assert(t, qt.Equals(tag.Time.Minute(), 59))
}

func TestParseTagFutureDateIsError(t *testing.T) {
	_, err := dataset.ParseTag("2099-01-01")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCheckCompatibleMinDate(t *testing.T) {
	minDate, err := dataset.DateOnly("2023-02-09")
	qt.Assert(t, qt.IsNil(err))
	compat := dataset.Compatibility{MinDate: &minDate}

	onBoundary, err := dataset.ParseTag("2023-02-09")
	qt.Assert(t, qt.IsNil(err))
	ok, err := dataset.CheckCompatible("v1.0.0", onBoundary, compat)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	before := dataset.Tag{Kind: dataset.TagArchive, Time: minDate.Add(-24 * time.Hour)}
	_, err = dataset.CheckCompatible("v1.0.0", before, compat)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCheckCompatibleCliVersion(t *testing.T) {
	compat := dataset.Compatibility{CLIVersion: ">=1.0.0"}
	ok, err := dataset.CheckCompatible("v1.2.0", dataset.Tag{Kind: dataset.TagCustom}, compat)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	_, err = dataset.CheckCompatible("v0.9.0", dataset.Tag{Kind: dataset.TagCustom}, compat)
	qt.Assert(t, qt.IsNotNil(err))
}
