package vault

import (
	"context"
	"path/filepath"
	"time"

	"ImageVault/internal/container"
	"ImageVault/internal/encoding"
	"ImageVault/internal/envelope"
	"ImageVault/internal/fileops"
	"ImageVault/internal/log"
	"ImageVault/internal/util"
)

// EncryptImage seals req.Image and its metadata under req.Key and returns
// the container bytes, armored when req.ReedSolomon is set.
func EncryptImage(ctx context.Context, req *EncryptRequest) ([]byte, error) {
	out, err := encryptImage(ctx, req)
	if err != nil {
		audit("encrypt", err)
		return nil, err
	}
	return out, nil
}

func encryptImage(ctx context.Context, req *EncryptRequest) ([]byte, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	status(req.Reporter, "Reading metadata...")
	env, err := envelope.Build(req.Image, req.Filename, req.Format)
	if err != nil {
		return nil, err
	}
	envBytes, err := env.MarshalBinary()
	if err != nil {
		return nil, err
	}

	version := req.Version
	if version == 0 {
		version = container.CurrentVersion
	}

	status(req.Reporter, "Encrypting...")
	progress(req.Reporter, 0, util.Sizeify(int64(len(req.Image))))
	out, err := container.Encrypt(req.Key, envBytes, req.Image, container.WithVersion(version))
	if err != nil {
		return nil, err
	}

	if req.ReedSolomon {
		status(req.Reporter, "Adding Reed-Solomon parity...")
		rs := req.RSCodecs
		if rs == nil {
			if rs, err = encoding.NewRSCodecs(); err != nil {
				return nil, err
			}
		}
		out = encoding.Armor(rs, out)
	}

	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	progress(req.Reporter, 1, util.Sizeify(int64(len(out))))
	status(req.Reporter, "Completed")

	log.Debug("Image encrypted",
		log.String("filename", env.Filename),
		log.Stringer("format", env.Format),
		log.Stringer("version", version),
		log.Bool("reed_solomon", req.ReedSolomon),
		log.Int("size", len(out)),
		log.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// EncryptFile reads the image at path and seals it like EncryptImage.
// When req.Filename is empty the base name of path is stored.
// The file is read only up to the request's size limit.
func EncryptFile(ctx context.Context, path string, req *EncryptRequest) ([]byte, error) {
	if err := cancelled(ctx); err != nil {
		audit("encrypt", err)
		return nil, err
	}

	var r EncryptRequest
	if req != nil {
		r = *req
	}
	data, err := fileops.ReadFile(path, r.maxImageSize())
	if err != nil {
		audit("encrypt", err)
		return nil, err
	}
	r.Image = data
	if r.Filename == "" {
		r.Filename = filepath.Base(path)
	}
	return EncryptImage(ctx, &r)
}
