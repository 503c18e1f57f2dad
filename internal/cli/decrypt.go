package cli

import (
	"context"
	"path/filepath"
	"strings"

	"ImageVault/internal/crypto"
	"ImageVault/internal/errors"
	"ImageVault/internal/fileops"
	"ImageVault/internal/vault"

	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt [containers...]",
	Short: "Decrypt .ivc containers back to images",
	Long: `Decrypt ImageVault containers (.ivc) back to the original images.

Each image is restored byte for byte under the file name stored in the
container, next to the container or into --output-dir. Armored containers
are repaired transparently.

Examples:
  # Decrypt with a keyfile
  imagevault decrypt -i cat.png.ivc -K vault.key

  # Decrypt everything in a folder into restored/
  imagevault decrypt -i 'sealed/*.ivc' --output-dir restored/ -K vault.key

  # Read the key from stdin (for scripts)
  cat vault.key | imagevault decrypt -i cat.png.ivc -P`,
	RunE: runDecrypt,
}

// Decrypt flags
var (
	decInput     []string
	decOutput    string
	decOutputDir string
	decWorkers   int
	decQuiet     bool
	decYes       bool
	decKey       keySource
)

func init() {
	rootCmd.AddCommand(decryptCmd)

	// Input/Output
	decryptCmd.Flags().StringArrayVarP(&decInput, "input", "i", nil, "Input .ivc container(s), globs or folders (can be specified multiple times)")
	decryptCmd.Flags().StringVarP(&decOutput, "output", "o", "", "Output image path (single input only; default: stored file name)")
	decryptCmd.Flags().StringVar(&decOutputDir, "output-dir", "", "Directory for the restored images")

	// Credentials
	decKey.register(decryptCmd, false)

	// Other
	decryptCmd.Flags().IntVar(&decWorkers, "workers", 0, "Containers decrypted in parallel (default from config)")
	decryptCmd.Flags().BoolVarP(&decQuiet, "quiet", "q", false, "Suppress progress output")
	decryptCmd.Flags().BoolVarP(&decYes, "yes", "y", false, "Overwrite existing output files")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	files, err := expandInputs(append(append([]string{}, decInput...), args...))
	if err != nil {
		return err
	}
	if decOutput != "" && len(files) > 1 {
		return errors.NewValidationError("output", "-o takes a single input; use --output-dir for several")
	}

	c := currentConfig()
	workers := c.Workers
	if decWorkers != 0 {
		workers = decWorkers
	}
	maxRead := vault.MaxContainerSize(c.MaxImageByte)

	key, err := decKey.resolve(cmd)
	if err != nil {
		return err
	}
	defer key.Close()

	// Output names come from inside the containers, so they are claimed as
	// each one is decrypted
	outputs := newOutputSet()
	rep := NewReporter(cmd.ErrOrStderr(), decQuiet)
	return runBatch(commandContext(cmd), files, workers, rep, func(ctx context.Context, input string) (string, error) {
		rep.For(filepath.Base(input)).SetStatus("Decrypting...")

		data, err := fileops.ReadFile(input, maxRead)
		if err != nil {
			return "", err
		}
		res, err := vault.DecryptImage(ctx, data, key)
		if err != nil {
			return "", err
		}
		defer crypto.SecureZero(res.Image)

		out, err := decryptOutputPath(input, res.Filename)
		if err != nil {
			return "", err
		}
		if err := outputs.claim(out, input); err != nil {
			return "", err
		}
		if err := fileops.WriteAtomic(out, res.Image, 0644, decYes); err != nil {
			return "", err
		}
		return out, nil
	})
}

// decryptOutputPath places the stored file name, reduced to its base name,
// next to the container or into --output-dir.
func decryptOutputPath(input, stored string) (string, error) {
	if decOutput != "" {
		return decOutput, nil
	}
	dir := decOutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if stored == "" {
		stored = strings.TrimSuffix(filepath.Base(input), ContainerExt)
	}
	return fileops.SafeJoin(dir, stored)
}
