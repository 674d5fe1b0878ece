package binding

import (
	"github.com/vkngwrapper/core/v2/common"
)

// CreateFlags indicate specific mapper behaviors to activate or deactivate
type CreateFlags int32

var mapperCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	mapperCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return mapperCreateFlagsMapping.FlagsToString(f)
}

const (
	// MapperCreateStrictCaps treats a limit of 0 in DeviceCaps as a real limit rather than as a
	// limit the backend did not report. With this flag, every slot class the backend leaves at 0
	// rejects all descriptors.
	MapperCreateStrictCaps CreateFlags = 1 << iota
)

func init() {
	MapperCreateStrictCaps.Register("MapperCreateStrictCaps")
}

// CreateOptions contains optional settings when creating a Mapper
type CreateOptions struct {
	Flags CreateFlags
}
