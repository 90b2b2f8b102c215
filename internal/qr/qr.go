// Package qr builds the emergency contact card encoded into a pet's
// QR code.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 300

// Card holds everything the printed tag needs to reunite a lost pet
// with its owner.
type Card struct {
	PetName    string
	PetType    string
	PetBreed   string
	OwnerName  string
	OwnerPhone string
}

// Content renders the plaintext block encoded into the QR image.
func Content(c Card) string {
	return fmt.Sprintf(`LOST PET - PLEASE HELP!
Pet: %s
Type: %s
Breed: %s

CONTACT OWNER:
Name: %s
Phone: %s

FOUND THIS PET?
Visit this guide:
https://www.americanhumane.org/public-education/what-to-if-youve-lost-your-pet/
`, c.PetName, c.PetType, c.PetBreed, c.OwnerName, c.OwnerPhone)
}

// Encode renders the card as a 300x300 PNG.
func Encode(c Card) ([]byte, error) {
	png, err := qrcode.Encode(Content(c), qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
