// pkg/resolver/exec.go
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/minoss/pkg/envelope"
	"github.com/joeydtaylor/minoss/pkg/script"
)

type execInput struct {
	Config  script.Config  `json:"config"`
	Request script.Request `json:"request"`
}

// execUnit runs an executable file per request. The process reads
// {"config": ..., "request": ...} on stdin and writes its result as JSON on
// stdout; a non-zero exit is a failure.
func execUnit(path, module, name string) script.Unit {
	return func(ctx context.Context, cfg script.Config, req script.Request, reply script.Reply) {
		in, err := json.Marshal(execInput{Config: cfg, Request: req})
		if err != nil {
			reply.Fail("encode unit input: " + err.Error())
			return
		}

		var stdout, stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, path)
		cmd.Dir = filepath.Dir(path)
		cmd.Stdin = bytes.NewReader(in)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		cmd.Env = append(os.Environ(),
			"MINOSS_MODULE="+module,
			"MINOSS_SCRIPT="+name,
			"MINOSS_OUTPUT="+req.Output(),
		)

		runErr := cmd.Run()
		out := bytes.TrimSpace(stdout.Bytes())

		if runErr != nil {
			if len(out) > 0 {
				if v, err := envelope.DecodeJSON(out); err == nil {
					reply.Fail(v)
					return
				}
			}
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				reply.Fail(msg)
				return
			}
			reply.Fail(runErr.Error())
			return
		}

		if len(out) == 0 {
			reply.Success(true)
			return
		}
		v, err := envelope.DecodeJSON(out)
		if err != nil {
			reply.Fail("invalid output from unit: " + err.Error())
			return
		}
		reply.Success(v)
	}
}
