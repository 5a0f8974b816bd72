package models

import "gorm.io/gorm"

// DocumentSequence is a per-company counter row for numbered documents
// (PO-{company}-0001, GRN-{company}-0001). The counter is bumped with a
// single UPDATE inside the owning transaction so concurrent writers
// serialize on the row instead of re-reading the latest document.
type DocumentSequence struct {
	gorm.Model
	CompanyCode string `json:"company_code" gorm:"uniqueIndex:idx_sequence_company_doc"`
	DocType     string `json:"doc_type" gorm:"uniqueIndex:idx_sequence_company_doc"`
	LastNo      int    `json:"last_no"`
}
