package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

var reportsLimit int

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Read or replace the host's local folder configuration",
}

var foldersGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the local folder configuration as JSON",
	Args:  cobra.NoArgs,
	RunE:  runFoldersGet,
}

var foldersSetCmd = &cobra.Command{
	Use:   "set [json]",
	Short: "Replace the local folder configuration",
	Long: `Replaces the host's local folder list. The argument is a JSON array:

  nativexctl folders set '[{"id":"1","name":"DCIM","enabled":true}]'`,
	Args: cobra.ExactArgs(1),
	RunE: runFoldersSet,
}

var permissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Check or request the host's media permission",
}

var permissionGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print whether the host may read local media",
	Args:  cobra.NoArgs,
	RunE:  runPermissionGet,
}

var permissionAllowCmd = &cobra.Command{
	Use:   "allow [true|false]",
	Short: "Ask the native API to grant or revoke media access",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPermissionAllow,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Reconcile backed-up media with the server and start the host's free-space scan",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

var reportsCmd = &cobra.Command{
	Use:   "reports [id]",
	Short: "List recent scan reports, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReports,
}

func runFoldersGet(cmd *cobra.Command, args []string) error {
	folders, err := app.Services().Config.GetLocalFolders(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, folders)
}

func runFoldersSet(cmd *cobra.Command, args []string) error {
	var folders []entity.LocalFolderConfig
	if err := json.Unmarshal([]byte(args[0]), &folders); err != nil {
		return fmt.Errorf("invalid folder list: %w", err)
	}
	if err := app.Services().Config.SetLocalFolders(cmd.Context(), folders); err != nil {
		return err
	}
	return printJSON(cmd, folders)
}

func runPermissionGet(cmd *cobra.Command, args []string) error {
	allowed := app.Services().Config.HasMediaPermission(cmd.Context())
	return printJSON(cmd, map[string]bool{"allowed": allowed})
}

func runPermissionAllow(cmd *cobra.Command, args []string) error {
	allow := true
	if len(args) == 1 {
		v, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", args[0])
		}
		allow = v
	}

	resp, err := app.Services().Config.AllowMedia(cmd.Context(), allow)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "native API answered %d\n", resp.StatusCode)
	if len(resp.Body) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	report, err := app.Services().FreeSpace.Scan(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, report)
}

func runReports(cmd *cobra.Command, args []string) error {
	svc := app.Services().FreeSpace

	if len(args) == 1 {
		report, err := svc.GetReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	}

	limit := reportsLimit
	if limit <= 0 {
		limit = app.HistoryLimit()
	}
	reports, err := svc.ListReports(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return printJSON(cmd, reports)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
