package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, ":8080", c.Server.Listen)
	assert.Equal(t, "modules", c.Modules.Root)
	assert.Equal(t, "log", c.Log.Dir)
	assert.Equal(t, "info", c.Log.Level)
	assert.True(t, c.Log.ConsoleEnabled())
	assert.False(t, c.Server.Debug)
	require.NoError(t, c.Validate())
}

func TestValidate_NormalizesRoutes(t *testing.T) {
	c := Config{Routes: []Route{
		{Path: "hello//{name}/", Module: "demo", Script: "echo", Output: " XML "},
		{Path: "/any", Method: "*", Module: "demo", Script: "echo"},
	}}
	require.NoError(t, c.Validate())

	assert.Equal(t, "/hello/{name}", c.Routes[0].Path)
	assert.Equal(t, "GET", c.Routes[0].Method)
	assert.Equal(t, "xml", c.Routes[0].Output)
	assert.Equal(t, "*", c.Routes[1].Method)
}

func TestValidate_Errors(t *testing.T) {
	off := false
	cases := map[string]Config{
		"negative server timeout": {Server: Server{TimeoutMS: -1}},
		"tls half set":            {Server: Server{TLSCert: "cert.pem"}},
		"bad level":               {Log: Log{Level: "loud", Console: &off}},
		"bad reserved":            {Modules: Modules{Reserved: []string{"Config"}}},
		"empty message":           {Messages: map[string]string{"error404": " "}},
		"relative body path":      {Log: Log{BodyPaths: []string{"demo/echo"}}},
		"relative skip path":      {Metrics: Metrics{SkipPaths: []string{"healthz"}}},
		"missing path":            {Routes: []Route{{Module: "demo", Script: "echo"}}},
		"bad module":              {Routes: []Route{{Path: "/x", Module: "Demo", Script: "echo"}}},
		"bad script":              {Routes: []Route{{Path: "/x", Module: "demo", Script: "ec-ho"}}},
		"bad output":              {Routes: []Route{{Path: "/x", Module: "demo", Script: "echo", Output: "yaml"}}},
		"bad method":              {Routes: []Route{{Path: "/x", Method: "BREW", Module: "demo", Script: "echo"}}},
		"negative route timeout": {Routes: []Route{
			{Path: "/x", Module: "demo", Script: "echo", Policy: Policy{TimeoutMS: -5}},
		}},
		"duplicate": {Routes: []Route{
			{Path: "/x", Module: "demo", Script: "echo"},
			{Path: "x/", Method: "get", Module: "demo", Script: "other"},
		}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, c.Validate())
		})
	}
}

func TestLog_ConsoleExplicitlyOff(t *testing.T) {
	off := false
	assert.False(t, Log{Console: &off}.ConsoleEnabled())
}

func TestValidate_ObservabilityPaths(t *testing.T) {
	c := Config{
		Log:     Log{BodyPaths: []string{"/demo/echo"}},
		Metrics: Metrics{SkipPaths: []string{"/healthz"}},
	}
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"/demo/echo"}, c.Log.BodyPaths)
	assert.Equal(t, []string{"/healthz"}, c.Metrics.SkipPaths)
}
