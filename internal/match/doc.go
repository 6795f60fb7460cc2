// Package match suggests the closest known name for a misspelled one.
//
// Names are normalized (CamelCase split, case-folded, separators removed)
// before their edit distance is compared, so "user_profile" is an exact
// match for "UserProfile".
package match
