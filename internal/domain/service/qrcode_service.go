package service

// QRCodeService renders invite join links as QR code images.
type QRCodeService interface {
	// GenerateInviteQR returns a PNG encoding of the given join URL.
	GenerateInviteQR(joinURL string) ([]byte, error)
}
