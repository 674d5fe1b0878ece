package gfx

import (
	"github.com/cockroachdb/errors"
)

type Filter int32

const (
	FilterNone Filter = iota
	FilterPoint
	FilterLinear
	FilterAnisotropic
)

var filterStrings = map[Filter]string{
	FilterNone:        "None",
	FilterPoint:       "Point",
	FilterLinear:      "Linear",
	FilterAnisotropic: "Anisotropic",
}

func (f Filter) String() string {
	str, ok := filterStrings[f]
	if !ok {
		return "unknown Filter"
	}
	return str
}

type Address int32

const (
	AddressWrap Address = iota
	AddressMirror
	AddressClamp
	AddressBorder
)

var addressStrings = map[Address]string{
	AddressWrap:   "Wrap",
	AddressMirror: "Mirror",
	AddressClamp:  "Clamp",
	AddressBorder: "Border",
}

func (a Address) String() string {
	str, ok := addressStrings[a]
	if !ok {
		return "unknown Address"
	}
	return str
}

type ComparisonFunc int32

const (
	ComparisonFuncNever ComparisonFunc = iota
	ComparisonFuncLess
	ComparisonFuncEqual
	ComparisonFuncLessEqual
	ComparisonFuncGreater
	ComparisonFuncNotEqual
	ComparisonFuncGreaterEqual
	ComparisonFuncAlways
)

var comparisonFuncStrings = map[ComparisonFunc]string{
	ComparisonFuncNever:        "Never",
	ComparisonFuncLess:         "Less",
	ComparisonFuncEqual:        "Equal",
	ComparisonFuncLessEqual:    "LessEqual",
	ComparisonFuncGreater:      "Greater",
	ComparisonFuncNotEqual:     "NotEqual",
	ComparisonFuncGreaterEqual: "GreaterEqual",
	ComparisonFuncAlways:       "Always",
}

func (f ComparisonFunc) String() string {
	str, ok := comparisonFuncStrings[f]
	if !ok {
		return "unknown ComparisonFunc"
	}
	return str
}

// MaxAnisotropy is the largest anisotropy a sampler may request
const MaxAnisotropy uint32 = 16

type SamplerInfo struct {
	MinFilter     Filter
	MagFilter     Filter
	MipFilter     Filter
	AddressU      Address
	AddressV      Address
	AddressW      Address
	MaxAnisotropy uint32
	CmpFunc       ComparisonFunc
	BorderColor   Color
	MinLOD        uint32
	MaxLOD        uint32
	MipLODBias    float32
}

func DefaultSamplerInfo() SamplerInfo {
	return SamplerInfo{
		MinFilter:     FilterLinear,
		MagFilter:     FilterLinear,
		MipFilter:     FilterNone,
		AddressU:      AddressWrap,
		AddressV:      AddressWrap,
		AddressW:      AddressWrap,
		MaxAnisotropy: MaxAnisotropy,
		CmpFunc:       ComparisonFuncNever,
		MaxLOD:        1000,
	}
}

func (i *SamplerInfo) Validate() error {
	if i.MinFilter == FilterNone || i.MagFilter == FilterNone {
		return errors.Newf("sampler min and mag filters cannot be %s", FilterNone)
	}
	if i.MipFilter == FilterAnisotropic {
		return errors.Wrap(ErrInvalidUsageCombination, "mip filter cannot be anisotropic")
	}
	if i.MaxAnisotropy > MaxAnisotropy {
		return errors.Newf("sampler max anisotropy %d is greater than %d", i.MaxAnisotropy, MaxAnisotropy)
	}
	if (i.MinFilter == FilterAnisotropic || i.MagFilter == FilterAnisotropic) && i.MaxAnisotropy == 0 {
		return errors.Wrap(ErrInvalidUsageCombination, "anisotropic filtering requires a max anisotropy of at least 1")
	}
	if i.MinLOD > i.MaxLOD {
		return errors.Newf("sampler min LOD %d is greater than max LOD %d", i.MinLOD, i.MaxLOD)
	}

	return nil
}

// Hash packs the sampler's filtering, addressing, anisotropy and comparison into a single value.
// Border color and LOD settings are not included, so samplers that differ only in those share
// a hash.
func (i *SamplerInfo) Hash() uint32 {
	hash := uint32(i.MinFilter) & 0x3
	hash |= (uint32(i.MagFilter) & 0x3) << 2
	hash |= (uint32(i.MipFilter) & 0x3) << 4
	hash |= (uint32(i.AddressU) & 0x3) << 6
	hash |= (uint32(i.AddressV) & 0x3) << 8
	hash |= (uint32(i.AddressW) & 0x3) << 10
	hash |= (i.MaxAnisotropy & 0x1f) << 12
	hash |= (uint32(i.CmpFunc) & 0x7) << 17
	return hash
}

// SamplerInfoFromHash rebuilds the SamplerInfo a hash was generated from. Fields not stored in
// the hash take their default values.
func SamplerInfoFromHash(hash uint32) SamplerInfo {
	info := DefaultSamplerInfo()
	info.MinFilter = Filter(hash & 0x3)
	info.MagFilter = Filter((hash >> 2) & 0x3)
	info.MipFilter = Filter((hash >> 4) & 0x3)
	info.AddressU = Address((hash >> 6) & 0x3)
	info.AddressV = Address((hash >> 8) & 0x3)
	info.AddressW = Address((hash >> 10) & 0x3)
	info.MaxAnisotropy = (hash >> 12) & 0x1f
	info.CmpFunc = ComparisonFunc((hash >> 17) & 0x7)
	return info
}
