// Package model defines the shared vocabulary for document conversion.
//
// The read path produces [Block] values: semantic units (headings,
// paragraphs, list items, tables) extracted from a DOCX document in
// document order. The write path consumes [Element] values: typed
// descriptors from the JSON schema or the Markdown parser that drive
// document construction.
//
// The two families are deliberately separate. Blocks describe what a
// document contains; Elements describe what a document should contain,
// including styling the read path never reports (alignment, colors,
// page breaks). Both are ephemeral per-conversion values with no state
// surviving a single read or build call.
package model
