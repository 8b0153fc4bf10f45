// Package scheduling holds the placement rules for slots and reservations.
//
// The rules are pure decisions over a State snapshot: they read siblings
// through the accessor and either return nil (or a Placement) or a typed
// *Error. Persisting the decision and serialising concurrent writers on the
// same model or slot is the caller's job, see postgres.Transactor and the
// lock key helpers in this package.
package scheduling
