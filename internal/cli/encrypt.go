package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stickpad/stickpad/internal/crypto"
	"github.com/stickpad/stickpad/internal/model"
	"github.com/stickpad/stickpad/internal/store"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [note-id]",
	Short: "Encrypt a note's content with a password",
	Long: `Encrypt a note's content with a password. The plaintext is replaced by
the ciphertext; only the title stays readable.

Supported algorithms: aes-256-gcm (default, tamper-evident), aes-256-cbc,
aes-256-ctr, aes-256-cfb, aes-256-ofb. Only GCM detects a wrong password
or corrupted data; the other modes provide confidentiality only.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncrypt,
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [note-id]",
	Short: "Decrypt a note's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecrypt,
}

var encryptAlgo string

func init() {
	encryptCmd.Flags().StringVar(&encryptAlgo, "algorithm", string(crypto.AES256GCM), "Cipher algorithm")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	algo, err := crypto.ParseAlgorithm(encryptAlgo)
	if err != nil {
		return err
	}

	id, err := resolveNote(notes, args[0])
	if err != nil {
		return err
	}
	note, _ := notes.NoteByID(id)
	if note.Encrypted() {
		return fmt.Errorf("note is already encrypted")
	}

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	fmt.Print("Confirm password: ")
	confirmBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()

	if string(passwordBytes) != string(confirmBytes) {
		return errors.New("passwords do not match")
	}
	if len(passwordBytes) == 0 {
		return errors.New("password must not be empty")
	}

	res, err := crypto.Encrypt(note.Content, string(passwordBytes), algo)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	// Replace the plaintext with the envelope
	empty := ""
	patch := store.NotePatch{
		Content: &empty,
		Encryption: &model.Encryption{
			Ciphertext: res.Ciphertext,
			Salt:       res.Salt,
			IV:         res.IV,
			Algorithm:  string(algo),
		},
	}
	if err := notes.UpdateNote(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to save encrypted note: %w", err)
	}

	if !algo.Authenticated() {
		fmt.Printf("⚠ %s does not detect tampering or a wrong password.\n", algo)
	}
	fmt.Printf("🔒 Encrypted %q with %s\n", note.Title, algo)
	return nil
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	id, err := resolveNote(notes, args[0])
	if err != nil {
		return err
	}
	note, _ := notes.NoteByID(id)
	if !note.Encrypted() {
		return fmt.Errorf("note is not encrypted")
	}

	algo, err := crypto.ParseAlgorithm(note.Encryption.Algorithm)
	if err != nil {
		return err
	}

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()

	plaintext, err := crypto.Decrypt(note.Encryption.Ciphertext, string(passwordBytes),
		note.Encryption.Salt, note.Encryption.IV, algo)
	if err != nil {
		return err
	}

	patch := store.NotePatch{
		Content:        &plaintext,
		DropEncryption: true,
	}
	if err := notes.UpdateNote(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to save decrypted note: %w", err)
	}

	fmt.Printf("🔓 Decrypted %q\n", note.Title)
	return nil
}
