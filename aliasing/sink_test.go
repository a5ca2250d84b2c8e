package aliasing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/name-transition-go/aliasing"
	"github.com/forgeworks/name-transition-go/testutil/aliasing/testdoubles"
)

// installSpy swaps in a fresh SinkSpy and restores the previous sink on cleanup.
func installSpy(t *testing.T) *testdoubles.SinkSpy {
	t.Helper()

	previous := aliasing.CurrentSink()
	t.Cleanup(func() {
		aliasing.SetSink(previous)
	})

	spy := testdoubles.NewSinkSpy()
	aliasing.SetSink(spy)

	return spy
}

func Test_DefaultSink_IsInstalled(t *testing.T) {
	assert.NotNil(t, aliasing.CurrentSink())
}

func Test_SetSink_ReplacesPreviousSinkCompletely(t *testing.T) {
	previous := aliasing.CurrentSink()
	defer aliasing.SetSink(previous)

	oldSpy := testdoubles.NewSinkSpy()
	newSpy := testdoubles.NewSinkSpy()

	aliasing.SetSink(oldSpy)
	aliasing.EmitNameUsage("before swap", 0)

	aliasing.SetSink(newSpy)
	aliasing.EmitNameUsage("after swap", 0)

	assert.Equal(t, 1, oldSpy.TotalCount(), "old sink must receive only pre-swap events")
	assert.True(t, oldSpy.HasMessage("before swap"))
	assert.False(t, oldSpy.HasMessage("after swap"))

	assert.Equal(t, 1, newSpy.TotalCount(), "new sink must receive only post-swap events")
	assert.True(t, newSpy.HasMessage("after swap"))
	assert.False(t, newSpy.HasMessage("before swap"))
}

func Test_SetSink_WithNil_InstallsNopSink(t *testing.T) {
	previous := aliasing.CurrentSink()
	defer aliasing.SetSink(previous)

	aliasing.SetSink(nil)

	assert.NotPanics(t, func() {
		aliasing.EmitNameUsage("dropped silently", 0)
	})
}

func Test_EmitNameUsage_AttributesTheCaller(t *testing.T) {
	spy := installSpy(t)

	aliasing.EmitNameUsage("legacy symbol used", 0)

	events := spy.Events()
	require.Len(t, events, 1)
	assert.Equal(t, aliasing.CategoryName, events[0].Category)
	assert.True(t, events[0].HasLocation)
	assert.Contains(t, events[0].Location.File, "sink_test.go")
	assert.Positive(t, events[0].Location.Line)
}

func Test_EmitNameUsageAt_UsesExplicitLocation(t *testing.T) {
	spy := installSpy(t)

	aliasing.EmitNameUsageAt("legacy symbol used", aliasing.Location{File: "compat.go", Line: 42})

	events := spy.Events()
	require.Len(t, events, 1)
	assert.Equal(t, aliasing.CategoryName, events[0].Category)
	assert.True(t, events[0].HasLocation)
	assert.Equal(t, "compat.go", events[0].Location.File)
	assert.Equal(t, 42, events[0].Location.Line)
}

func Test_EmitModuleUsage_CarriesModuleCategory(t *testing.T) {
	spy := installSpy(t)

	aliasing.EmitModuleUsage("legacy module binding", aliasing.Location{File: "compat.go", Line: 7})

	assert.Equal(t, 1, spy.CountByCategory(aliasing.CategoryModule))
	assert.Equal(t, 0, spy.CountByCategory(aliasing.CategoryName))
}

func Test_LoggerSink_LogsEventsAtWarnLevel(t *testing.T) {
	loggerSpy := testdoubles.NewLoggerSpy()
	sink := aliasing.NewLoggerSink(loggerSpy)

	sink.Notify(aliasing.Event{
		Message:     "'oldName' is deprecated, use 'newName' instead.",
		Category:    aliasing.CategoryName,
		Location:    aliasing.Location{File: "caller.go", Line: 13},
		HasLocation: true,
	})

	records := loggerSpy.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "warn", records[0].Level)
	assert.True(t, loggerSpy.HasWarnLog("'oldName' is deprecated, use 'newName' instead."))
	assert.Contains(t, records[0].Args, "caller.go")
	assert.Contains(t, records[0].Args, 13)
}

func Test_Category_String(t *testing.T) {
	assert.Equal(t, "name", aliasing.CategoryName.String())
	assert.Equal(t, "module", aliasing.CategoryModule.String())
	assert.Equal(t, "unknown", aliasing.Category(0).String())
}
