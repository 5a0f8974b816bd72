package repositories

import (
	"errors"
	"fmt"

	"apparel-app/models"

	"gorm.io/gorm"
)

// NextDocumentNo bumps the per-company counter row for docType and formats
// the document number ("GRN-ACME-0001"). The bump is a single UPDATE so
// concurrent writers inside their own transactions serialize on the row;
// callers must run it inside the transaction that inserts the document.
func NextDocumentNo(tx *gorm.DB, companyCode string, docType string) (string, error) {
	res := tx.Model(&models.DocumentSequence{}).
		Where("company_code = ? AND doc_type = ?", companyCode, docType).
		UpdateColumn("last_no", gorm.Expr("last_no + 1"))
	if res.Error != nil {
		return "", res.Error
	}

	if res.RowsAffected == 0 {
		seq := models.DocumentSequence{CompanyCode: companyCode, DocType: docType, LastNo: 1}
		if err := tx.Create(&seq).Error; err != nil {
			// Lost the race on the unique index, bump the existing row
			res = tx.Model(&models.DocumentSequence{}).
				Where("company_code = ? AND doc_type = ?", companyCode, docType).
				UpdateColumn("last_no", gorm.Expr("last_no + 1"))
			if res.Error != nil {
				return "", res.Error
			}
			if res.RowsAffected == 0 {
				return "", errors.New("failed to allocate document number")
			}
		} else {
			return fmt.Sprintf("%s-%s-%04d", docType, companyCode, 1), nil
		}
	}

	var seq models.DocumentSequence
	if err := tx.Where("company_code = ? AND doc_type = ?", companyCode, docType).First(&seq).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", docType, companyCode, seq.LastNo), nil
}
