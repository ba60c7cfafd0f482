package service

// QRCodeService generates shareable QR codes for public profile pages.
type QRCodeService interface {
	// GenerateProfileQR renders a PNG QR code pointing at the public
	// list page for the given username.
	GenerateProfileQR(username string) ([]byte, error)
}
