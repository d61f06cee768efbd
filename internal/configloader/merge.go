package configloader

import "github.com/yaklabco/mdtree/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: override can only switch a setting on
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Backend != "" {
		result.Backend = override.Backend
	}
	if override.Renderer != "" {
		result.Renderer = override.Renderer
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a file cannot switch off what a lower
	// layer switched on. Environment variables can.
	result.Format.DetectLang = base.Format.DetectLang || override.Format.DetectLang
	result.Format.Backup = base.Format.Backup || override.Format.Backup
	result.Text.IncludeCode = base.Text.IncludeCode || override.Text.IncludeCode
	result.Text.IncludeAltText = base.Text.IncludeAltText || override.Text.IncludeAltText
	result.Text.StripPunctuation = base.Text.StripPunctuation || override.Text.StripPunctuation

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
