// Command backupcheck streams a sequence of backup frames through a
// Validator and reports whether the stream is well-formed. It exists to
// exercise the backup package end to end, not as a production tool.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/m-abdelghani02/libsignal-client-api/backup"
	"github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		purposeFlag string
		assemble    bool
	)

	cmd := &cobra.Command{
		Use:   "backupcheck",
		Short: "Validate (or assemble) a stream of backup frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			purpose, err := backup.ParsePurpose(purposeFlag)
			if err != nil {
				return fmt.Errorf("--purpose: %w", err)
			}
			meta := backup.BackupMeta{Version: 1, Purpose: purpose}

			var v *backup.Validator
			if assemble {
				v = backup.NewAssembler(meta)
			} else {
				v = backup.NewValidator(meta)
			}

			frames := demoFrames()
			for i, frame := range frames {
				if err := v.AddFrame(frame); err != nil {
					logrus.WithField("frame", i).WithError(err).Error("backupcheck: rejected frame")
					return err
				}
			}

			if assemble {
				out, err := v.Finalize()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d recipients, %d chats, %d calls, %d sticker packs\n",
					len(out.Recipients), len(out.Chats), len(out.Calls), len(out.StickerPacks))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: stream is well-formed (purpose=%s)\n", v.Meta().Purpose)
			return nil
		},
	}

	cmd.Flags().StringVar(&purposeFlag, "purpose", "remote_backup", "backup purpose, one of: "+backup.AliasesHelp())
	cmd.Flags().BoolVar(&assemble, "assemble", false, "retain payloads and print the assembled object graph summary")
	return cmd
}

// demoFrames is a fixed, self-contained stream used to exercise the
// validator until a real frame source (file or stdin decoder) is wired
// in; there is no `.proto` reader in scope for this module.
func demoFrames() []*signalbackup.Frame {
	return []*signalbackup.Frame{
		{Item: &signalbackup.FrameAccountData{AccountData: &signalbackup.AccountData{Username: []byte("demo")}}},
		{Item: &signalbackup.FrameRecipient{Recipient: &signalbackup.Recipient{Id: 1, DestinationE164: "+15550100"}}},
		{Item: &signalbackup.FrameChat{Chat: &signalbackup.Chat{Id: 10, RecipientId: 1}}},
		{Item: &signalbackup.FrameChatItem{ChatItem: &signalbackup.ChatItem{ChatId: 10, AuthorId: 1, DateSent: 1700000000000, Text: []byte("hi")}}},
	}
}
