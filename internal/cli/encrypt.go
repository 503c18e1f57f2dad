package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ImageVault/internal/container"
	"ImageVault/internal/crypto"
	"ImageVault/internal/errors"
	"ImageVault/internal/fileops"
	"ImageVault/internal/vault"

	"github.com/spf13/cobra"
)

// ContainerExt is appended to encrypted outputs.
const ContainerExt = ".ivc"

var encryptCmd = &cobra.Command{
	Use:   "encrypt [images...]",
	Short: "Encrypt images into .ivc containers",
	Long: `Encrypt one or more images into ImageVault containers (.ivc).

The original file name, format and dimensions are sealed with the image.
Each input produces its own container, named <input>.ivc by default.

Examples:
  # Encrypt with a new key (printed once, store it safely)
  imagevault encrypt -i cat.png --generate-key

  # Encrypt with a keyfile and Reed-Solomon armor
  imagevault encrypt -i cat.png -K vault.key --reed-solomon

  # Encrypt a folder of images into another folder, 8 at a time
  imagevault encrypt -i photos/ --output-dir sealed/ -K vault.key --workers 8

  # Read the key from stdin (for scripts)
  cat vault.key | imagevault encrypt -i cat.png -P`,
	RunE: runEncrypt,
}

// Encrypt flags
var (
	encInput       []string
	encOutput      string
	encOutputDir   string
	encFormat      string
	encCipher      string
	encReedSolomon bool
	encWorkers     int
	encQuiet       bool
	encYes         bool
	encKey         keySource
)

func init() {
	rootCmd.AddCommand(encryptCmd)

	// Input/Output
	encryptCmd.Flags().StringArrayVarP(&encInput, "input", "i", nil, "Input image(s), globs or folders (can be specified multiple times)")
	encryptCmd.Flags().StringVarP(&encOutput, "output", "o", "", "Output .ivc path (single input only)")
	encryptCmd.Flags().StringVar(&encOutputDir, "output-dir", "", "Directory for the containers")
	encryptCmd.Flags().StringVar(&encFormat, "format", "", "Image format to record when the file signature is not recognized")

	// Credentials
	encKey.register(encryptCmd, true)

	// Security options
	encryptCmd.Flags().StringVar(&encCipher, "cipher", "", "Cipher: aes-256-gcm or chacha20-poly1305 (default from config)")
	encryptCmd.Flags().BoolVar(&encReedSolomon, "reed-solomon", false, "Add Reed-Solomon armor (about 6% overhead)")

	// Other
	encryptCmd.Flags().IntVar(&encWorkers, "workers", 0, "Images encrypted in parallel (default from config)")
	encryptCmd.Flags().BoolVarP(&encQuiet, "quiet", "q", false, "Suppress progress output")
	encryptCmd.Flags().BoolVarP(&encYes, "yes", "y", false, "Overwrite existing output files")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	files, err := expandInputs(append(append([]string{}, encInput...), args...))
	if err != nil {
		return err
	}
	if encOutput != "" && len(files) > 1 {
		return errors.NewValidationError("output", "-o takes a single input; use --output-dir for several")
	}

	// Inputs with the same base name would share an output under --output-dir
	outputs := newOutputSet()
	for _, input := range files {
		if err := outputs.claim(encryptOutputPath(input), input); err != nil {
			return err
		}
	}

	c := currentConfig()
	suite := c.Suite
	if encCipher != "" {
		if suite, err = crypto.ParseSuite(encCipher); err != nil {
			return err
		}
	}
	version, ok := container.VersionForSuite(suite)
	if !ok {
		return fmt.Errorf("%w: no container version for %s", errors.ErrUnsupportedVersion, suite)
	}
	workers := c.Workers
	if encWorkers != 0 {
		workers = encWorkers
	}

	key, err := encKey.resolve(cmd)
	if err != nil {
		return err
	}
	defer key.Close()

	rep := NewReporter(cmd.ErrOrStderr(), encQuiet)
	if !encQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Encrypting %d image(s) with %s, key %s\n", len(files), suite, key.Fingerprint())
	}

	return runBatch(commandContext(cmd), files, workers, rep, func(ctx context.Context, input string) (string, error) {
		out := encryptOutputPath(input)
		data, err := vault.EncryptFile(ctx, input, &vault.EncryptRequest{
			Format:       encFormat,
			Key:          key,
			Version:      version,
			ReedSolomon:  encReedSolomon || c.ReedSolomon,
			MaxImageSize: c.MaxImageByte,
			Reporter:     rep.For(filepath.Base(input)),
		})
		if err != nil {
			return "", err
		}
		if err := fileops.WriteAtomic(out, data, 0644, encYes); err != nil {
			return "", err
		}
		return out, nil
	})
}

func encryptOutputPath(input string) string {
	switch {
	case encOutput != "":
		// Add .ivc extension if missing
		if !strings.HasSuffix(encOutput, ContainerExt) {
			return encOutput + ContainerExt
		}
		return encOutput
	case encOutputDir != "":
		return filepath.Join(encOutputDir, filepath.Base(input)+ContainerExt)
	default:
		return input + ContainerExt
	}
}
