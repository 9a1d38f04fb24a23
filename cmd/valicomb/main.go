// Command valicomb validates a JSON document against a YAML ruleset and
// prints the failures, one per line.
//
// Usage:
//
//	valicomb -data payload.json -rules ruleset.yml [-lang de] [-strict] [-stop]
//
// The ruleset file declares rules, optional labels and mode toggles:
//
//	strict: true
//	labels:
//	  email: Email address
//	rules:
//	  - rule: required
//	    fields: [email]
//	  - rule: email
//	    fields: [email]
//	    message: "{field} must be a deliverable address"
//
// Exit status is 0 when the document passes, 1 when it fails validation and
// 2 on a configuration problem (unreadable files, unknown rules, bad
// parameters).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/frostybee/valicomb"
)

// ruleset is the decoded shape of the -rules file.
type ruleset struct {
	Rules           []valicomb.RuleDef `yaml:"rules"`
	Labels          map[string]string  `yaml:"labels"`
	Strict          bool               `yaml:"strict"`
	StopOnFirstFail bool               `yaml:"stopOnFirstFail"`
}

// fatal reports a configuration problem and exits with status 2, keeping
// status 1 reserved for data that failed validation.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fatal("config: %v", err)
	}

	var (
		dataPath  = flag.String("data", "", "path to the JSON document to validate")
		rulesPath = flag.String("rules", "", "path to the YAML ruleset")
		langCode  = flag.String("lang", cfg.Lang, "message catalog language code")
		strict    = flag.Bool("strict", cfg.Strict, "report input fields no rule covers")
		stop      = flag.Bool("stop", false, "stop at the first failure")
	)
	flag.Parse()

	if *dataPath == "" || *rulesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := readData(*dataPath)
	if err != nil {
		fatal("data: %v", err)
	}
	rs, err := readRuleset(*rulesPath)
	if err != nil {
		fatal("rules: %v", err)
	}

	v := valicomb.New(data, valicomb.WithLanguage(*langCode))
	v.Labels(rs.Labels)
	v.AddRules(rs.Rules...)
	v.SetStrict(rs.Strict || *strict)
	v.SetStopOnFirstFail(rs.StopOnFirstFail || *stop)

	ok, err := v.Validate()
	if err != nil {
		fatal("validate: %v", err)
	}
	if ok {
		return
	}

	fields := make([]string, 0, len(v.Errors()))
	for field := range v.Errors() {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range v.FieldErrors(field) {
			fmt.Printf("%s: %s\n", field, msg)
		}
	}
	os.Exit(1)
}

func readData(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return data, nil
}

func readRuleset(path string) (*ruleset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rs ruleset
	if err := yaml.Unmarshal(content, &rs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("%s declares no rules", path)
	}
	return &rs, nil
}
