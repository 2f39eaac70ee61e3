package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"documents", "doc"},
	Short:   "Manage documents",
	Long:    `List, upload, review and bookmark documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Long: `List documents, newest first.

Filters accept "all" to remove a constraint.

Examples:
  docdesk document list --status pending
  docdesk document list --type safety --department operations --page 2`,
	Args: cobra.NoArgs,
	RunE: runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document",
	Long: `Upload a file as a new document. It starts out pending approval.

Example:
  docdesk document upload policy.pdf --title "Safety policy" --type safety --department operations`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentUpload,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [doc-id]",
	Short: "Edit document metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUpdate,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentApproveCmd = &cobra.Command{
	Use:   "approve [doc-id]",
	Short: "Approve a pending document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentApprove,
}

var documentRejectCmd = &cobra.Command{
	Use:   "reject [doc-id]",
	Short: "Reject a pending document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReject,
}

var documentReviseCmd = &cobra.Command{
	Use:   "revise [doc-id]",
	Short: "Request changes to a document",
	Long: `Send a document back to its owner with requested changes.

Example:
  docdesk document revise 12 --change "update the contact list" --deadline 2024-04-01`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentRevise,
}

var documentBookmarkCmd = &cobra.Command{
	Use:   "bookmark [doc-id]",
	Short: "Toggle a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentBookmark,
}

var documentWorkflowCmd = &cobra.Command{
	Use:   "workflow [doc-id]",
	Short: "Show the approval history",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentWorkflow,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Print the download link",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDownload,
}

// Flags for document commands.
var (
	docFilters    domain.DocumentFilters
	docTitle      string
	docSummary    string
	docType       string
	docDepartment string
	docPriority   string
	docComments   string
	docChanges    []string
	docDeadline   string
)

func init() {
	f := documentListCmd.Flags()
	f.StringVar(&docFilters.Type, "type", "", "document type")
	f.StringVar(&docFilters.Department, "department", "", "department")
	f.StringVar(&docFilters.Status, "status", "", "status (draft, pending, approved, rejected, archived)")
	f.StringVar(&docFilters.Priority, "priority", "", "priority (low, medium, high, urgent)")
	f.IntVar(&docFilters.Page, "page", 0, "page number")
	f.IntVarP(&docFilters.Limit, "limit", "n", 0, "page size")

	for _, c := range []*cobra.Command{documentUploadCmd, documentUpdateCmd} {
		c.Flags().StringVar(&docTitle, "title", "", "title")
		c.Flags().StringVar(&docSummary, "summary", "", "summary")
		c.Flags().StringVar(&docType, "type", "", "document type")
		c.Flags().StringVar(&docDepartment, "department", "", "department")
		c.Flags().StringVar(&docPriority, "priority", "", "priority")
	}
	documentUpdateCmd.Flags().StringVar(&docDeadline, "deadline", "", "deadline (YYYY-MM-DD)")

	for _, c := range []*cobra.Command{documentApproveCmd, documentRejectCmd} {
		c.Flags().StringVarP(&docComments, "comments", "m", "", "review comments")
	}
	documentReviseCmd.Flags().StringArrayVar(&docChanges, "change", nil, "requested change (repeatable)")
	documentReviseCmd.Flags().StringVar(&docDeadline, "deadline", "", "deadline (YYYY-MM-DD)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentApproveCmd)
	documentCmd.AddCommand(documentRejectCmd)
	documentCmd.AddCommand(documentReviseCmd)
	documentCmd.AddCommand(documentBookmarkCmd)
	documentCmd.AddCommand(documentWorkflowCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	rootCmd.AddCommand(documentCmd)
}

// documentSession checks the service and restores the session.
func documentSession(cmd *cobra.Command) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	return requireSession(commandContext(cmd))
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}

	if err := documentService.List(commandContext(cmd), docFilters); err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	snap := documentService.Snapshot()
	if jsonOutput {
		return printJSON(cmd, snap.Documents)
	}
	if len(snap.Documents) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range snap.Documents {
		printDocumentLine(cmd, &snap.Documents[i])
	}
	p := snap.Pagination
	cmd.Printf("\nPage %d of %d (%d documents)\n", p.Page, max(p.Pages, 1), p.Total)
	cmd.Printf("Pending: %d  Approved: %d  Rejected: %d\n", snap.Stats.Pending, snap.Stats.Approved, snap.Stats.Rejected)
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if err := documentService.Get(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	// Comments are shown when available; a failure leaves the document view intact.
	_ = documentService.Comments(ctx, args[0])

	doc := documentService.Snapshot().Current
	if doc == nil {
		return fmt.Errorf("document %s: %w", args[0], domain.ErrNotFound)
	}
	if jsonOutput {
		return printJSON(cmd, doc)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:      %s\n", doc.Title)
	cmd.Printf("  Summary:    %s\n", orDash(doc.Summary))
	cmd.Printf("  Type:       %s\n", doc.Type)
	cmd.Printf("  Department: %s\n", orDash(doc.Department))
	cmd.Printf("  Status:     %s\n", doc.Status)
	cmd.Printf("  Priority:   %s\n", doc.Priority)
	cmd.Printf("  File:       %s (%s, %s)\n", orDash(doc.File.Name), orDash(doc.File.Type), formatSize(doc.File.Size))
	cmd.Printf("  Bookmarked: %t\n", doc.Bookmarked)
	cmd.Printf("  Views:      %d  Downloads: %d\n", doc.ViewCount, doc.DownloadCount)
	cmd.Printf("  Created:    %s\n", formatTime(doc.CreatedAt))
	cmd.Printf("  Deadline:   %s\n", formatTime(doc.Deadline))

	if len(doc.Comments) > 0 {
		cmd.Println("\n  Comments:")
		for _, c := range doc.Comments {
			printComment(cmd, &c)
		}
	}
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > domain.MaxUploadSize {
		return fmt.Errorf("%s is larger than %s", path, formatSize(domain.MaxUploadSize))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	title := docTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	req := domain.UploadRequest{
		FileName:   filepath.Base(path),
		Content:    content,
		Title:      title,
		Summary:    docSummary,
		Type:       domain.DocumentType(docType),
		Department: docDepartment,
		Priority:   domain.Priority(docPriority),
	}

	doc, err := documentService.Upload(commandContext(cmd), req)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}
	cmd.Printf("Uploaded %s as document %s (%s).\n", req.FileName, doc.ID, doc.Status)
	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}

	var update domain.DocumentUpdate
	flags := cmd.Flags()
	if flags.Changed("title") {
		update.Title = &docTitle
	}
	if flags.Changed("summary") {
		update.Summary = &docSummary
	}
	if flags.Changed("department") {
		update.Department = &docDepartment
	}
	if flags.Changed("type") {
		t := domain.DocumentType(docType)
		if !t.IsValid() {
			return fmt.Errorf("unknown document type %q: %w", docType, domain.ErrInvalidInput)
		}
		update.Type = &t
	}
	if flags.Changed("priority") {
		p := domain.Priority(docPriority)
		if !p.IsValid() {
			return fmt.Errorf("unknown priority %q: %w", docPriority, domain.ErrInvalidInput)
		}
		update.Priority = &p
	}
	if flags.Changed("deadline") {
		d, err := parseDate(docDeadline)
		if err != nil {
			return err
		}
		update.Deadline = &d
	}
	if update == (domain.DocumentUpdate{}) {
		return errors.New("nothing to update")
	}

	if err := documentService.Update(commandContext(cmd), args[0], update); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	cmd.Printf("Document %s updated.\n", args[0])
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}

func runDocumentApprove(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.Approve(commandContext(cmd), args[0], docComments); err != nil {
		return fmt.Errorf("failed to approve document: %w", err)
	}
	cmd.Printf("Document %s approved.\n", args[0])
	return nil
}

func runDocumentReject(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.Reject(commandContext(cmd), args[0], docComments); err != nil {
		return fmt.Errorf("failed to reject document: %w", err)
	}
	cmd.Printf("Document %s rejected.\n", args[0])
	return nil
}

func runDocumentRevise(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}

	req := domain.RevisionRequest{Changes: docChanges}
	if docDeadline != "" {
		d, err := parseDate(docDeadline)
		if err != nil {
			return err
		}
		req.Deadline = d
	}
	if err := documentService.RequestRevision(commandContext(cmd), args[0], req); err != nil {
		return fmt.Errorf("failed to request revision: %w", err)
	}
	cmd.Printf("Revision requested for document %s.\n", args[0])
	return nil
}

func runDocumentBookmark(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.ToggleBookmark(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}

	result := "removed"
	for _, d := range documentService.Snapshot().Bookmarked {
		if d.ID == args[0] {
			result = "added"
		}
	}
	cmd.Printf("Bookmark %s for document %s.\n", result, args[0])
	return nil
}

func runDocumentWorkflow(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if err := documentService.Workflow(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to get workflow: %w", err)
	}

	entries := documentService.Snapshot().Workflow
	if jsonOutput {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		cmd.Println("No workflow history.")
		return nil
	}
	for _, e := range entries {
		cmd.Printf("  %s  %-10s %s -> %s  by %s\n",
			formatTime(e.Timestamp), e.Action, orDash(string(e.PreviousStatus)), e.NewStatus, orDash(e.UserID))
		if e.Comments != "" {
			cmd.Printf("      %s\n", e.Comments)
		}
	}
	return nil
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	link, err := documentService.DownloadLink(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get download link: %w", err)
	}
	cmd.Println(link)
	return nil
}

// parseDate parses a YYYY-MM-DD date in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}
