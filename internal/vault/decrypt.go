package vault

import (
	"context"
	"time"

	"ImageVault/internal/container"
	"ImageVault/internal/crypto"
	"ImageVault/internal/encoding"
	"ImageVault/internal/errors"
	"ImageVault/internal/log"
)

// DecryptImage opens a container produced by EncryptImage, armored or not.
//
// Every failure is returned with its full internal classification so
// callers can log it; pass it through errors.Public before showing it to
// anyone who may control the input.
func DecryptImage(ctx context.Context, data []byte, key *crypto.Key) (*DecryptResult, error) {
	res, err := decryptImage(ctx, data, key)
	if err != nil {
		audit("decrypt", err)
		return nil, err
	}
	return res, nil
}

func decryptImage(ctx context.Context, data []byte, key *crypto.Key) (*DecryptResult, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.ErrNoInput
	}
	if key == nil || key.IsClosed() {
		return nil, errors.ErrNoKey
	}
	start := time.Now()

	armored := encoding.IsArmored(data)
	if armored {
		rs, err := encoding.NewRSCodecs()
		if err != nil {
			return nil, err
		}
		if data, err = encoding.Unarmor(rs, data); err != nil {
			return nil, err
		}
	}

	res, err := container.Decrypt(key, data)
	if err != nil {
		return nil, err
	}

	if err := cancelled(ctx); err != nil {
		crypto.SecureZero(res.Payload)
		return nil, err
	}

	env := res.Envelope
	log.Debug("Image decrypted",
		log.String("filename", env.Filename),
		log.Stringer("format", env.Format),
		log.Bool("armored", armored),
		log.Duration("elapsed", time.Since(start)),
	)
	return &DecryptResult{
		Image:    res.Payload,
		Filename: env.Filename,
		Format:   env.Format,
		Width:    env.Width,
		Height:   env.Height,
	}, nil
}
