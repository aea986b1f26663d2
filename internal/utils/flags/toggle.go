package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleValueTypeConstant                = "bool"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleLookupErrorTemplate              = "flag %s is not a toggle"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	longFlagPrefixConstant                 = "--"
	flagValueSeparatorConstant             = "="
)

var (
	toggleLiterals = map[string]bool{
		toggleTrueCanonicalValue:  true,
		"yes":                     true,
		"on":                      true,
		"1":                       true,
		"t":                       true,
		"y":                       true,
		toggleFalseCanonicalValue: false,
		"no":                      false,
		"off":                     false,
		"0":                       false,
		"f":                       false,
		"n":                       false,
	}

	toggleRegistryMutex sync.RWMutex
	toggleNames         = map[string]struct{}{}
)

// AddToggleFlag registers a long-form boolean flag that accepts yes/no, on/off, and true/false values.
// A bare flag means true.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	flagSet.Var(newToggleFlagValue(defaultValue, target), name, usage)
	flag := flagSet.Lookup(name)
	if flag == nil {
		return
	}
	flag.NoOptDefVal = toggleTrueCanonicalValue
	flag.Usage = formatToggleUsage(usage, defaultValue)

	toggleRegistryMutex.Lock()
	toggleNames[name] = struct{}{}
	toggleRegistryMutex.Unlock()
}

// ToggleValue reads the current value of a toggle flag registered with AddToggleFlag.
func ToggleValue(flagSet *pflag.FlagSet, name string) (bool, error) {
	if flagSet == nil {
		return false, fmt.Errorf(toggleLookupErrorTemplate, name)
	}
	flag := flagSet.Lookup(name)
	if flag == nil {
		return false, fmt.Errorf(toggleLookupErrorTemplate, name)
	}
	value, isToggle := flag.Value.(*toggleFlagValue)
	if !isToggle {
		return false, fmt.Errorf(toggleLookupErrorTemplate, name)
	}
	return value.currentValue, nil
}

// NormalizeToggleArguments rewrites "--toggle value" into "--toggle=value" so pflag hands the value to the toggle.
// Arguments after "--" are left untouched.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefixConstant {
			return append(normalized, arguments[index:]...)
		}

		if expectsSeparateToggleValue(current) && index+1 < len(arguments) && !strings.HasPrefix(arguments[index+1], "-") {
			normalized = append(normalized, current+flagValueSeparatorConstant+arguments[index+1])
			index++
			continue
		}

		normalized = append(normalized, current)
	}

	return normalized
}

func expectsSeparateToggleValue(argument string) bool {
	if !strings.HasPrefix(argument, longFlagPrefixConstant) || strings.Contains(argument, flagValueSeparatorConstant) {
		return false
	}
	name := strings.TrimPrefix(argument, longFlagPrefixConstant)

	toggleRegistryMutex.RLock()
	defer toggleRegistryMutex.RUnlock()
	_, registered := toggleNames[name]
	return registered
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf("`%s` %s", placeholder, trimmed)
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		normalizedValue = toggleTrueCanonicalValue
	}
	parsedValue, known := toggleLiterals[normalizedValue]
	if !known {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value != nil && value.currentValue {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleValueTypeConstant
}
