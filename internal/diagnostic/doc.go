// Package diagnostic collects the findings raised while loading and
// resolving a schema: malformed expressions, references to fields that do
// not exist, unsupported defaults and compounds that contain themselves.
//
// Resolution keeps going after a finding so that one run reports every
// problem. Callers decide afterwards whether errors are fatal.
package diagnostic
