// Package qr re-issues encrypted ticket QR codes for the door scanner.
package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/skip2/go-qrcode"

	"ms-backoffice/internal/mapper"
)

const imageSize = 256

// TicketPayload is what the scanner reads back out of a QR code.
type TicketPayload struct {
	TicketID string    `json:"ticket_id"`
	Code     string    `json:"code"`
	EventID  string    `json:"event_id"`
	Holder   string    `json:"holder"`
	IssuedAt time.Time `json:"issued_at"`
}

// PayloadFor builds the payload of an attendee's ticket.
func PayloadFor(a mapper.Attendee, issuedAt time.Time) TicketPayload {
	return TicketPayload{
		TicketID: a.TicketID,
		Code:     a.TicketCode,
		EventID:  a.EventID,
		Holder:   a.Name,
		IssuedAt: issuedAt.UTC(),
	}
}

type QRGenerator struct {
	secret []byte
}

func NewQRGenerator(secret string) (*QRGenerator, error) {
	if secret == "" {
		return nil, errors.New("empty QR secret")
	}
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &QRGenerator{secret: hashed[:]}, nil
}

// GenerateEncryptedQR renders the encrypted payload as a PNG image.
func (q *QRGenerator) GenerateEncryptedQR(p TicketPayload) ([]byte, error) {
	token, err := q.Encrypt(p)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(token, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// Encrypt returns the URL-safe base64 text stored in the QR code.
func (q *QRGenerator) Encrypt(p TicketPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	block, err := aes.NewCipher(q.secret)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decode reverses Encrypt.
func (q *QRGenerator) Decode(token string) (TicketPayload, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return TicketPayload{}, fmt.Errorf("decode token: %w", err)
	}
	if len(ciphertext) < aes.BlockSize {
		return TicketPayload{}, errors.New("token too short")
	}

	block, err := aes.NewCipher(q.secret)
	if err != nil {
		return TicketPayload{}, err
	}

	iv, data := ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:]
	plain := make([]byte, len(data))
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(plain, data)

	var p TicketPayload
	if err := json.Unmarshal(plain, &p); err != nil {
		return TicketPayload{}, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}
