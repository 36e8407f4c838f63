package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/regdrive/domrobot/pkg/api"
)

// newCallCmd creates and returns a new call command
func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <method>",
		Short: "Invoke a remote method",
		Long: `Call invokes a named remote method with a parameter object assembled
from --param flags and an optional YAML file. Flag values that parse as
JSON are passed through typed; everything else is sent as a string.
Dotted keys address nested parameters.

Examples:
  domrobot call domain.check --param domain=example.com
  domrobot call domain.check --param 'domain=["a.com","b.com"]' --query resData.domain
  domrobot call nameserver.createrecord --file record.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runCall,
	}

	cmd.Flags().StringArray("param", nil, "Parameter as key=value; repeatable")
	cmd.Flags().String("file", "", "YAML file with the parameter object")
	cmd.Flags().String("query", "", "Extract a value from the response by path")
	cmd.Flags().String("lang", "", "Response language for this call")
	cmd.Flags().String("cltrid", "", "Transaction-correlation id to attach to this call")
	return cmd
}

// buildParams assembles the parameter object from a YAML file and
// key=value flags; flags win over file entries.
func buildParams(file string, kvs []string) (map[string]any, error) {
	doc := []byte("{}")

	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read params file: %w", err)
		}
		doc, err = sigsyaml.YAMLToJSON(content)
		if err != nil {
			return nil, fmt.Errorf("unable to parse params file: %w", err)
		}
	}

	for _, kv := range kvs {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", kv)
		}
		var err error
		if gjson.Valid(value) {
			doc, err = sjson.SetRawBytes(doc, key, []byte(value))
		} else {
			doc, err = sjson.SetBytes(doc, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", kv, err)
		}
	}

	params := map[string]any{}
	if err := json.Unmarshal(doc, &params); err != nil {
		return nil, fmt.Errorf("params are not an object: %w", err)
	}
	return params, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	method := args[0]
	cfg := loadOrDefaultConfig()
	if cfg.Username == "" || cfg.Password == "" {
		return fmt.Errorf("no stored credentials; run \"domrobot login\" first")
	}

	file, _ := cmd.Flags().GetString("file")
	kvs, _ := cmd.Flags().GetStringArray("param")
	params, err := buildParams(file, kvs)
	if err != nil {
		return err
	}

	var opts []api.CallOption
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		params["lang"] = ""
		opts = append(opts, api.WithLang(lang))
	}
	if clTRID, _ := cmd.Flags().GetString("cltrid"); clTRID != "" {
		params["clTRID"] = ""
		opts = append(opts, api.WithTransactionID(clTRID))
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}
	loginRsp, err := client.Login(cmd.Context(), cfg.Username, cfg.Password, cfg.OTPSecret)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	if !loginRsp.OK() {
		return fmt.Errorf("login rejected: %s (code %d)", loginRsp.Message, loginRsp.Code)
	}
	defer client.Logout(cmd.Context())

	rsp, err := client.Call(cmd.Context(), method, params, opts...)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	if query, _ := cmd.Flags().GetString("query"); query != "" {
		result := rsp.Get(query)
		if !result.Exists() {
			return fmt.Errorf("no value at %q", query)
		}
		fmt.Println(result.String())
		return nil
	}

	if jsonOutput {
		fmt.Println(string(rsp.Raw))
		return nil
	}

	if rsp.OK() {
		okLabel.Printf("✓ %s: %s (code %d)\n", method, rsp.Message, rsp.Code)
	} else {
		errorLabel.Printf("✗ %s: %s (code %d)\n", method, rsp.Message, rsp.Code)
	}
	if len(rsp.ResData) > 0 {
		printJSON(rsp.ResData)
	}
	return nil
}
