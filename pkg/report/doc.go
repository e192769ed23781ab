// Package report renders the per-question documents and gates their
// acceptance.
//
// A question's report is accepted only when the narrative document reaches
// the configured size floor and the spreadsheet document renders; otherwise
// the narrative is relocated to the failed area with the rejection reason
// and the question is requeued by the caller. A report is never partially
// persisted.
package report
