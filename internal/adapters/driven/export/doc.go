// Package export provides interchange-file exporters for
// classification records.
//
// Both exporters emit the same column set and share one quirk
// inherited from running alongside spreadsheet programs: when the
// target file is held open by Excel the write diverts to a .new
// sibling instead of failing, and the caller reports the path actually
// written.
package export
