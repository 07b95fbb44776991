package request

// UpdateSettingsRequest replaces the caller's settings. Timezone must be an
// IANA identifier such as "Asia/Dhaka".
type UpdateSettingsRequest struct {
	Language         string `json:"language" binding:"omitempty,max=10"`
	Timezone         string `json:"timezone" binding:"required,max=64"`
	Currency         string `json:"currency" binding:"omitempty,max=10"`
	DateFormat       string `json:"date_format" binding:"omitempty,max=20"`
	AutoPrintReceipt bool   `json:"auto_print_receipt"`
	AutoPrintKOT     bool   `json:"auto_print_kot"`
	Theme            string `json:"theme" binding:"omitempty,oneof=light dark system"`
	CompactMode      bool   `json:"compact_mode"`
}
