package aliasing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/name-transition-go/aliasing"
)

func newTestBag(t *testing.T) (*aliasing.AttrBag, aliasing.Renaming) {
	t.Helper()

	return aliasing.NewAttrBag("BuildCoordinator"), aliasing.MustRenaming("worker", "slave")
}

func Test_AttrBag_LegacyWriteRedirectsToCanonicalAttribute(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))

	bag.Set("slaveCount", 5)

	value, err := bag.Get("workerCount")
	require.NoError(t, err)
	assert.Equal(t, 5, value)

	// no shadow field under the legacy name
	_, exists := bag.Attr("slaveCount")
	assert.False(t, exists)

	assert.Equal(t, 1, spy.CountByCategory(aliasing.CategoryName))
}

func Test_AttrBag_LegacyReadResolvesToCanonicalAttribute(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))
	bag.Set("workerCount", 12)
	spy.Reset()

	value, err := bag.Get("slaveCount")
	require.NoError(t, err)
	assert.Equal(t, 12, value)

	assert.Equal(t, 1, spy.CountByCategory(aliasing.CategoryName))
	assert.True(t, spy.HasMessage("'slaveCount' attribute is deprecated, use 'workerCount' instead."))
}

func Test_AttrBag_WriteThenReadThroughLegacyName(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerValue"))

	bag.Set("slaveValue", 5)
	assert.Equal(t, 1, spy.TotalCount())

	value, err := bag.Get("slaveValue")
	require.NoError(t, err)
	assert.Equal(t, 5, value)
	assert.Equal(t, 2, spy.TotalCount())
}

func Test_AttrBag_CanonicalAccessStaysSilent(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))

	bag.Set("workerCount", 3)
	value, err := bag.Get("workerCount")

	require.NoError(t, err)
	assert.Equal(t, 3, value)
	assert.Equal(t, 0, spy.TotalCount())
}

func Test_AttrBag_UnknownAttribute_FailsWithoutEvent(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))

	_, err := bag.Get("neverDefined")

	var unknownErr *aliasing.UnknownAttributeError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "BuildCoordinator", unknownErr.TypeName)
	assert.Equal(t, "neverDefined", unknownErr.Attr)
	assert.Equal(t, "'BuildCoordinator' object has no attribute 'neverDefined'", err.Error())

	assert.Equal(t, 0, spy.TotalCount())
}

func Test_AttrBag_AliasedReadOfUnsetCanonicalAttribute(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))

	_, err := bag.Get("slaveCount")

	var unknownErr *aliasing.UnknownAttributeError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "workerCount", unknownErr.Attr, "the miss is reported against the canonical attribute")

	// the legacy name was used, so the notification still fires
	assert.Equal(t, 1, spy.TotalCount())
}

func Test_AttrBag_RegisterAlias_FailsWhenLegacyNameIsAnExistingAttribute(t *testing.T) {
	installSpy(t)
	bag, rename := newTestBag(t)

	bag.Set("slaveCount", 1)

	err := bag.RegisterAlias(rename, "workerCount")
	assert.ErrorIs(t, err, aliasing.ErrDuplicateAlias)
}

func Test_AttrBag_RegisterAlias_FailsOnDoubleRegistration(t *testing.T) {
	installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))

	err := bag.RegisterAlias(rename, "workerCount")
	assert.ErrorIs(t, err, aliasing.ErrDuplicateAlias)
}

func Test_AttrBag_RegisterAlias_ValidatesNames(t *testing.T) {
	installSpy(t)
	bag, rename := newTestBag(t)

	err := bag.RegisterAlias(rename, "builderCount")
	assert.ErrorIs(t, err, aliasing.ErrConfiguration)

	err = bag.RegisterAlias(rename, "workerCount", aliasing.WithLegacyName("builderCount"))
	assert.ErrorIs(t, err, aliasing.ErrConfiguration)
}

func Test_AttrBag_WithLegacyNameOverride(t *testing.T) {
	spy := installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerInfo", aliasing.WithLegacyName("buildSlaveInfo")))

	bag.Set("buildSlaveInfo", "x")

	value, err := bag.Get("workerInfo")
	require.NoError(t, err)
	assert.Equal(t, "x", value)
	assert.Equal(t, 1, spy.TotalCount())
}

func Test_AttrAliases_AliasedNamesKeepRegistrationOrder(t *testing.T) {
	installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))
	require.NoError(t, bag.RegisterAlias(rename, "workerNames"))
	require.NoError(t, bag.RegisterAlias(rename, "activeWorker"))

	assert.Equal(t, []string{"slaveCount", "slaveNames", "activeSlave"}, bag.AliasedNames())
}

func Test_AttrAliases_CapabilityQueries(t *testing.T) {
	installSpy(t)
	bag, rename := newTestBag(t)

	require.NoError(t, bag.RegisterAlias(rename, "workerCount"))

	canonicalName, ok := bag.TryGetAliased("slaveCount")
	require.True(t, ok)
	assert.Equal(t, "workerCount", canonicalName)

	canonicalName, ok = bag.TryRedirectSet("slaveCount")
	require.True(t, ok)
	assert.Equal(t, "workerCount", canonicalName)

	_, ok = bag.TryGetAliased("workerCount")
	assert.False(t, ok, "canonical names are not aliases")

	_, ok = bag.TryRedirectSet("somethingElse")
	assert.False(t, ok)
}
