package ubo

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hal/gfx"
)

// ValidateBuiltins checks every built-in block layout for internal consistency and against the
// device's limits. Device initialization should not continue when it fails.
func ValidateBuiltins(caps *gfx.DeviceCaps) error {
	for _, layout := range Builtins() {
		err := layout.Validate()
		if err != nil {
			return errors.Wrapf(err, "built-in uniform block %s", layout.Name)
		}

		if caps == nil {
			continue
		}
		err = layout.CheckCaps(caps)
		if err != nil {
			return err
		}
	}

	return nil
}

// MatchShader compares every uniform block a shader declares against the built-in layout of the
// same name. Blocks that are not built in are ignored.
func MatchShader(info *gfx.ShaderInfo) error {
	builtins := make(map[string]Layout)
	for _, layout := range Builtins() {
		builtins[layout.Name] = layout
	}

	for index := range info.Blocks {
		block := &info.Blocks[index]
		layout, ok := builtins[block.Name]
		if !ok {
			continue
		}
		err := layout.MatchBlock(block)
		if err != nil {
			return errors.Wrapf(err, "shader %s", info.Name)
		}
	}

	return nil
}
