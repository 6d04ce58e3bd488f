package scopes

import "gorm.io/gorm"

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// WithField filters on column = value, skipping empty values so optional
// query filters can be chained unconditionally.
func WithField(column string, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

func WithVendorEmail(email string) func(db *gorm.DB) *gorm.DB {
	return WithField("vendor_email", email)
}

func Visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_visible = ?", true)
}

func Approved(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "approved")
}
