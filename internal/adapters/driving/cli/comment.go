package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	Aliases: []string{"comments"},
	Short:   "Discuss documents",
}

var commentListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List comments on a document, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentList,
}

var commentAddCmd = &cobra.Command{
	Use:   "add [doc-id] [text]",
	Short: "Comment on a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentAdd,
}

var commentEditCmd = &cobra.Command{
	Use:   "edit [comment-id] [text]",
	Short: "Change a comment",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentEdit,
}

var commentResolveCmd = &cobra.Command{
	Use:   "resolve [comment-id]",
	Short: "Mark a comment resolved",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentResolve,
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentDelete,
}

func init() {
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
	commentCmd.AddCommand(commentResolveCmd)
	commentCmd.AddCommand(commentDeleteCmd)
	rootCmd.AddCommand(commentCmd)
}

func printComment(cmd *cobra.Command, c *domain.Comment) {
	resolved := ""
	if c.Resolved {
		resolved = " (resolved)"
	}
	cmd.Printf("    [%s] %s %s%s\n", c.ID, formatTime(c.Timestamp), orDash(c.Author), resolved)
	cmd.Printf("        %s\n", c.Text)
}

func runCommentList(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	// Comments attach to the held detail document.
	if err := documentService.Get(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if err := documentService.Comments(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	var comments []domain.Comment
	if cur := documentService.Snapshot().Current; cur != nil {
		comments = cur.Comments
	}
	if jsonOutput {
		return printJSON(cmd, comments)
	}
	if len(comments) == 0 {
		cmd.Println("No comments.")
		return nil
	}
	for i := range comments {
		printComment(cmd, &comments[i])
	}
	return nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.AddComment(commandContext(cmd), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	cmd.Println("Comment added.")
	return nil
}

func runCommentEdit(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.UpdateComment(commandContext(cmd), args[0], args[1], nil); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	cmd.Println("Comment updated.")
	return nil
}

func runCommentResolve(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	resolved := true
	if err := documentService.UpdateComment(commandContext(cmd), args[0], "", &resolved); err != nil {
		return fmt.Errorf("failed to resolve comment: %w", err)
	}
	cmd.Println("Comment resolved.")
	return nil
}

func runCommentDelete(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.DeleteComment(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	cmd.Println("Comment deleted.")
	return nil
}
