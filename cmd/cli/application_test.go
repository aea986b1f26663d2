package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/stdlibsync/cmd/cli"
	"github.com/temirov/stdlibsync/internal/stdlibsync"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testingInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(testingInstance, decoderError)
	require.NoError(testingInstance, decoder.Decode(viperInstance.AllSettings()))

	return configuration
}

func TestEmbeddedDefaultsDecodeIntoApplicationConfiguration(t *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(t)

	require.Equal(t, "info", configuration.Common.LogLevel)
	require.Equal(t, "console", configuration.Common.LogFormat)
	require.Equal(t, stdlibsync.DefaultCommandConfiguration(), configuration.Sync.Sanitize())
}

func TestEmbeddedDefaultsAreWellFormedYAML(t *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(t, "yaml", configurationType)

	var document map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(configurationData, &document))
	require.ElementsMatch(t, []string{"common", "sync"}, mapKeys(document))
	require.ElementsMatch(t, []string{"log_level", "log_format"}, mapKeys(document["common"]))
	require.ElementsMatch(t, []string{"repository_root"}, mapKeys(document["sync"]))
}

func TestEmbeddedDefaultConfigurationReturnsCopy(t *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(t, byte('#'), secondCopy[0])
}

func mapKeys[Value any](source map[string]Value) []string {
	keys := make([]string, 0, len(source))
	for key := range source {
		keys = append(keys, key)
	}
	return keys
}
