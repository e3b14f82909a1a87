package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var rpcURL string

// rpcCmd sends a single JSON-RPC request to a running mintd server.
var rpcCmd = &cobra.Command{
	Use:   "rpc <method> [params-json]",
	Short: "Call a JSON-RPC method on a running server",
	Long: `Send one JSON-RPC request to a running mintd server and print the
response. Params, when given, must be a single JSON object.

Examples:
  mintd rpc server_info
  mintd rpc token_info '{"token_id": 1}'
  mintd rpc submit '{"OperationType":"Prepare","Account":"<hex>","Descriptor":"ipfs://..."}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRPC,
}

func init() {
	rootCmd.AddCommand(rpcCmd)
	rpcCmd.Flags().StringVar(&rpcURL, "url", "http://127.0.0.1:5005/", "server JSON-RPC URL")
}

func runRPC(cmd *cobra.Command, args []string) error {
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  args[0],
		"id":      1,
	}
	if len(args) == 2 {
		var params json.RawMessage
		if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
			return fmt.Errorf("params must be valid JSON: %w", err)
		}
		request["params"] = params
	}

	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(rpcURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Pretty-print when the response is JSON, pass through otherwise.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
