package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/answerview/internal/config"
)

// flagKeysAnnotation lists "flag=config.key" pairs a command overrides.
const flagKeysAnnotation = "answerview/flag-keys"

// applyConfigFlagOverrides copies changed flags into v. Flags named after
// a config key apply directly; extra maps other flag names to keys.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, extra map[string]string) {
	for _, opt := range config.GetConfigOptions() {
		flag := cmd.Flags().Lookup(opt.Key)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, opt.Key, opt.Key)
	}
	for flagName, key := range extra {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, flagName, key)
	}
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := cmd.Flags().GetInt(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}

// bindFlagKeys records flag-to-key pairs on cmd for the root pre-run.
func bindFlagKeys(cmd *cobra.Command, pairs map[string]string) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	for flag, key := range pairs {
		cmd.Annotations[flagKeysAnnotation+"/"+flag] = key
	}
}

func commandFlagKeys(cmd *cobra.Command) map[string]string {
	out := map[string]string{}
	prefix := flagKeysAnnotation + "/"
	for k, key := range cmd.Annotations {
		if flag, ok := strings.CutPrefix(k, prefix); ok && flag != "" {
			out[flag] = key
		}
	}
	return out
}

func mergeKeys(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
