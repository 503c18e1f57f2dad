package cli

import (
	"encoding/hex"
	"fmt"

	"ImageVault/internal/container"
	"ImageVault/internal/encoding"
	"ImageVault/internal/errors"
	"ImageVault/internal/fileops"
	"ImageVault/internal/util"
	"ImageVault/internal/vault"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [containers...]",
	Short: "Show the public fields of .ivc containers",
	Long: `Show the version, cipher, nonce and sizes of ImageVault containers.

No key is needed and nothing is decrypted. The file name and format are
encrypted and are not shown.

Examples:
  imagevault inspect -i cat.png.ivc`,
	RunE: runInspect,
}

var inspectInput []string

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringArrayVarP(&inspectInput, "input", "i", nil, "Container(s) to inspect (can be specified multiple times)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	files, err := expandInputs(append(append([]string{}, inspectInput...), args...))
	if err != nil {
		return err
	}

	maxRead := vault.MaxContainerSize(currentConfig().MaxImageByte)
	out := cmd.OutOrStdout()
	failed := 0
	for i, path := range files {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "File:       %s\n", path)
		if err := inspectFile(cmd, path, maxRead); err != nil {
			failed++
			fmt.Fprintf(out, "Error:      %s\n", errors.UserMessage(errors.Public(err)))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be inspected", failed, len(files))
	}
	return nil
}

func inspectFile(cmd *cobra.Command, path string, maxRead int64) error {
	data, err := fileops.ReadFile(path, maxRead)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	armored := encoding.IsArmored(data)
	if armored {
		rs, err := encoding.NewRSCodecs()
		if err != nil {
			return err
		}
		if data, err = encoding.Unarmor(rs, data); err != nil {
			return err
		}
	}

	info, err := container.Inspect(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Version:    %s\n", info.Version)
	fmt.Fprintf(out, "Nonce:      %s\n", hex.EncodeToString(info.Nonce))
	fmt.Fprintf(out, "Ciphertext: %s\n", util.Sizeify(int64(info.CiphertextLen)))
	fmt.Fprintf(out, "Size:       %s\n", util.Sizeify(int64(info.Size)))
	fmt.Fprintf(out, "Armored:    %t\n", armored)
	return nil
}
