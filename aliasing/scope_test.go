package aliasing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/name-transition-go/aliasing"
)

func newTestScope(t *testing.T) *aliasing.Scope {
	t.Helper()

	return aliasing.NewScope("coordinator", aliasing.MustRenaming("worker", "slave"))
}

func Test_Scope_BindValue_SharesTheValueUnderTheLegacyName(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	canonical := map[string]int{"builders": 3}
	require.NoError(t, scope.BindValue("WorkerDefaults", canonical))

	bound, ok := scope.Lookup("SlaveDefaults")
	require.True(t, ok)
	assert.Equal(t, 1, spy.CountByCategory(aliasing.CategoryModule))

	// direct re-binding, not a copy
	sharedMap, isMap := bound.(map[string]int)
	require.True(t, isMap)
	sharedMap["builders"] = 5
	assert.Equal(t, 5, canonical["builders"])
}

func Test_Scope_Lookup_FiresModuleEventOnlyOnFirstPickup(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	require.NoError(t, scope.BindValue("DefaultWorkerPort", 9989))

	for i := 0; i < 3; i++ {
		_, ok := scope.Lookup("DefaultSlavePort")
		require.True(t, ok)
	}

	assert.Equal(t, 1, spy.CountByCategory(aliasing.CategoryModule))
	assert.Equal(t, 0, spy.CountByCategory(aliasing.CategoryName))
	assert.True(t, spy.HasMessage("'DefaultSlavePort' is deprecated, use 'DefaultWorkerPort' instead."))
}

func Test_Scope_Lookup_ModuleEventReportsRegistrationSite(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	require.NoError(t, scope.BindValue("DefaultWorkerPort", 9989))

	_, ok := scope.Lookup("DefaultSlavePort")
	require.True(t, ok)

	events := spy.EventsByCategory(aliasing.CategoryModule)
	require.Len(t, events, 1)
	assert.True(t, events[0].HasLocation)
	assert.Contains(t, events[0].Location.File, "scope_test.go")
}

func Test_Scope_Value_FailsForUnknownLegacyName(t *testing.T) {
	installSpy(t)
	scope := newTestScope(t)

	_, err := scope.Value("SlaveSettings")

	assert.ErrorIs(t, err, aliasing.ErrUnknownAlias)
	assert.Contains(t, err.Error(), "SlaveSettings")
}

func Test_Scope_BindFunc_ForwarderDelegatesWithIdenticalArguments(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	fetch := func(id string, attempts int) (string, error) {
		return strings.Repeat(id, attempts), nil
	}

	legacyFetch, err := aliasing.LegacyFunc(scope, "fetchWorkerInfo", fetch)
	require.NoError(t, err)

	got, fetchErr := legacyFetch("b7", 2)
	require.NoError(t, fetchErr)
	assert.Equal(t, "b7b7", got)

	want, _ := fetch("b7", 2)
	assert.Equal(t, want, got)

	assert.Equal(t, 1, spy.CountByCategory(aliasing.CategoryName))
	assert.True(t, spy.HasMessage("'fetchSlaveInfo' function is deprecated, use 'fetchWorkerInfo' instead."))
}

func Test_Scope_BindFunc_ForwarderFiresOneEventPerCall(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	ping := func() int { return 1 }

	legacyPing, err := aliasing.LegacyFunc(scope, "pingWorker", ping)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		legacyPing()
	}

	assert.Equal(t, 5, spy.CountByCategory(aliasing.CategoryName))
	assert.Equal(t, 0, spy.CountByCategory(aliasing.CategoryModule))
}

func Test_Scope_BindFunc_ForwarderAttributesTheCallSite(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	ping := func() int { return 1 }

	legacyPing, err := aliasing.LegacyFunc(scope, "pingWorker", ping)
	require.NoError(t, err)

	legacyPing()

	event, ok := spy.LastEvent()
	require.True(t, ok)
	require.True(t, event.HasLocation)
	assert.Contains(t, event.Location.File, "scope_test.go")
	assert.NotContains(t, event.Location.File, "asm_")
}

func Test_Scope_BindFunc_SupportsVariadicFunctions(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	join := func(sep string, parts ...string) string {
		return strings.Join(parts, sep)
	}

	legacyJoin, err := aliasing.LegacyFunc(scope, "joinWorkerNames", join)
	require.NoError(t, err)

	assert.Equal(t, "a-b-c", legacyJoin("-", "a", "b", "c"))
	assert.Equal(t, "", legacyJoin("-"))
	assert.Equal(t, 2, spy.CountByCategory(aliasing.CategoryName))
}

func Test_Scope_BindMethod_UsesMethodWording(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	registry := &workerRegistry{names: []string{"b1", "b2"}}

	legacyCount, err := aliasing.LegacyMethod(scope, "countWorkers", registry.countWorkers)
	require.NoError(t, err)

	assert.Equal(t, 2, legacyCount())
	assert.True(t, spy.HasMessage("'countSlaves' method is deprecated, use 'countWorkers' instead."))
}

func Test_Scope_BindGetter_UsesAttributeWording(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	registry := &workerRegistry{names: []string{"b1"}}

	legacyNames, err := aliasing.LegacyGetter(scope, "workerNames", registry.getWorkerNames)
	require.NoError(t, err)

	assert.Equal(t, []string{"b1"}, legacyNames())
	assert.True(t, spy.HasMessage("'slaveNames' attribute is deprecated, use 'workerNames' instead."))
}

func Test_Scope_BindGetter_RejectsFunctionsWithParameters(t *testing.T) {
	installSpy(t)
	scope := newTestScope(t)

	_, err := scope.BindGetter("workerName", func(i int) string { return "" })

	assert.ErrorIs(t, err, aliasing.ErrConfiguration)
}

func Test_Scope_BindFunc_RejectsNonFunctionTargets(t *testing.T) {
	installSpy(t)
	scope := newTestScope(t)

	_, err := scope.BindFunc("workerCount", 42)
	assert.ErrorIs(t, err, aliasing.ErrConfiguration)

	var nilFunc func()
	_, err = scope.BindFunc("stopWorker", nilFunc)
	assert.ErrorIs(t, err, aliasing.ErrConfiguration)
}

func Test_Scope_DuplicateLegacyName_FailsForEveryShape(t *testing.T) {
	installSpy(t)

	noop := func() {}
	newRegistry := func() *workerRegistry { return &workerRegistry{} }

	tests := []struct {
		name     string
		register func(scope *aliasing.Scope) error
	}{
		{
			name: "value_binding",
			register: func(scope *aliasing.Scope) error {
				return scope.BindValue("WorkerThing", 1)
			},
		},
		{
			name: "func_binding",
			register: func(scope *aliasing.Scope) error {
				_, err := scope.BindFunc("workerThing", noop, aliasing.WithLegacyName("SlaveThing"))
				return err
			},
		},
		{
			name: "method_binding",
			register: func(scope *aliasing.Scope) error {
				_, err := scope.BindMethod("workerThing", noop, aliasing.WithLegacyName("SlaveThing"))
				return err
			},
		},
		{
			name: "getter_binding",
			register: func(scope *aliasing.Scope) error {
				_, err := scope.BindGetter("workerThing", func() int { return 0 }, aliasing.WithLegacyName("SlaveThing"))
				return err
			},
		},
		{
			name: "constructor_binding",
			register: func(scope *aliasing.Scope) error {
				_, err := scope.BindConstructor("WorkerThing", newRegistry)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := newTestScope(t)
			require.NoError(t, scope.BindValue("WorkerThing", "occupies the legacy name"))

			err := tt.register(scope)
			assert.ErrorIs(t, err, aliasing.ErrDuplicateAlias)
		})
	}
}

func Test_Scope_WithLegacyName_OverridesDerivation(t *testing.T) {
	spy := installSpy(t)
	scope := newTestScope(t)

	require.NoError(t, scope.BindValue("SomeWorker", "w", aliasing.WithLegacyName("SomeBuildSlave")))

	_, ok := scope.Lookup("SomeBuildSlave")
	require.True(t, ok)
	assert.True(t, spy.HasMessage("'SomeBuildSlave' is deprecated, use 'SomeWorker' instead."))

	_, ok = scope.Lookup("SomeSlave")
	assert.False(t, ok, "derived name must not be bound when an override is supplied")
}

func Test_Scope_WithLegacyName_InvalidOverrideFailsRegistration(t *testing.T) {
	installSpy(t)
	scope := newTestScope(t)

	err := scope.BindValue("SomeWorker", "w", aliasing.WithLegacyName("SomeBuilder"))

	assert.ErrorIs(t, err, aliasing.ErrConfiguration)
	assert.Equal(t, 0, scope.Len())
}

func Test_Scope_Introspection(t *testing.T) {
	installSpy(t)
	scope := newTestScope(t)

	require.NoError(t, scope.BindValue("WorkerDefaults", 1))
	_, err := scope.BindFunc("pingWorker", func() {})
	require.NoError(t, err)

	assert.Equal(t, "coordinator", scope.Name())
	assert.Equal(t, "worker", scope.Renaming().NewTerm())
	assert.Equal(t, 2, scope.Len())
	assert.Equal(t, []string{"SlaveDefaults", "pingSlave"}, scope.Names())

	canonicalName, ok := scope.CanonicalNameOf("pingSlave")
	require.True(t, ok)
	assert.Equal(t, "pingWorker", canonicalName)

	_, ok = scope.CanonicalNameOf("unknownSlave")
	assert.False(t, ok)
}

func Test_Scope_Func_ReturnsBoundForwarder(t *testing.T) {
	installSpy(t)
	scope := newTestScope(t)

	_, err := scope.BindFunc("pingWorker", func() int { return 7 })
	require.NoError(t, err)

	forwarder, err := scope.Func("pingSlave")
	require.NoError(t, err)
	assert.Equal(t, 7, forwarder.(func() int)())

	_, err = scope.Func("unknownSlave")
	assert.ErrorIs(t, err, aliasing.ErrUnknownAlias)
}

// workerRegistry is a small canonical API used as a method/getter target in tests.
type workerRegistry struct {
	names []string
}

func (r *workerRegistry) countWorkers() int {
	return len(r.names)
}

func (r *workerRegistry) getWorkerNames() []string {
	return r.names
}
