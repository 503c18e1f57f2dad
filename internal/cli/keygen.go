package cli

import (
	"fmt"

	"ImageVault/internal/crypto"
	"ImageVault/internal/keyfile"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new random key",
	Long: `Generate a new 256-bit key from the system's secure random source.

Without --out the key is printed as 44 characters of base64. With --out it
is written to a keyfile readable only by you, and only the fingerprint is
printed.

Examples:
  imagevault keygen
  imagevault keygen --out vault.key`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

// Keygen flags
var (
	keygenOut string
	keygenYes bool
)

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVar(&keygenOut, "out", "", "Write the key to this keyfile instead of printing it")
	keygenCmd.Flags().BoolVarP(&keygenYes, "yes", "y", false, "Overwrite an existing keyfile")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	defer key.Close()

	out := cmd.OutOrStdout()
	if keygenOut != "" {
		if err := keyfile.Save(keygenOut, key, keygenYes); err != nil {
			return err
		}
		fmt.Fprintf(out, "Keyfile: %s\n", keygenOut)
	} else {
		fmt.Fprintf(out, "Key: %s\n", crypto.EncodeKey(key))
	}
	fmt.Fprintf(out, "Fingerprint: %s\n", key.Fingerprint())
	return nil
}
