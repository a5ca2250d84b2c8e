// Package aliasing keeps renamed APIs usable under their old names while the
// callers migrate, surfacing every legacy-name use as a Deprecation Event.
//
// A Renaming describes the terminology change (for example "slave" becoming
// "worker") and derives legacy names from canonical ones. A Scope installs
// forwarding bindings under the legacy names: shared module-level values,
// functions and methods wrapped with identical signatures, read-only getters,
// and constructors of renamed types. AttrBag and the embeddable AttrAliases
// cover instances whose legacy attribute names are only known dynamically.
//
// Every use of a legacy name notifies the single process-wide Sink. The sink
// decides policy - log, ignore, or escalate to a failure - and can be swapped
// at runtime with SetSink. Module-level bindings notify once per process on
// first pickup (CategoryModule); all other shapes notify on every use
// (CategoryName).
//
// Common usage pattern:
//
//	var rename = aliasing.MustRenaming("worker", "slave")
//	var scope = aliasing.NewScope("coordinator", rename)
//
//	// FetchSlaveInfo is the forwarding alias of FetchWorkerInfo.
//	var FetchSlaveInfo, _ = aliasing.LegacyFunc(scope, "FetchWorkerInfo", FetchWorkerInfo)
//
//	info := FetchSlaveInfo("builder-7") // notifies the sink, then delegates
//
// Registration is definition-time work: naming mistakes (ErrConfiguration) and
// colliding legacy names (ErrDuplicateAlias) fail eagerly, never at first use.
// Deprecation Events themselves are never errors; whether they become one is
// sink policy, such as the audit journal in the postgresjournal subpackage.
package aliasing
