// Package badger implements history.Store on an embedded BadgerDB.
//
// Records are stored under content-derived IDs with a time-ordered
// composite index, so recent-first listing is a reverse scan rather
// than a sort.
package badger
