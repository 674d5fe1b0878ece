package gles

import (
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hal/binding"
	"github.com/vkngwrapper/hal/gfx"
	"github.com/vkngwrapper/hal/ubo"
	"golang.org/x/exp/slog"
)

// UnitKind is the GL binding point namespace a resource is bound through
type UnitKind int32

const (
	// UnitKindUniformBuffer units are passed to glUniformBlockBinding
	UnitKindUniformBuffer UnitKind = iota
	// UnitKindStorageBuffer units are passed to glShaderStorageBlockBinding
	UnitKindStorageBuffer
	// UnitKindTexture units are assigned to sampler uniforms with glUniform1i
	UnitKindTexture
	// UnitKindImage units are passed to glBindImageTexture
	UnitKindImage
)

var unitKindStrings = map[UnitKind]string{
	UnitKindUniformBuffer: "UniformBuffer",
	UnitKindStorageBuffer: "StorageBuffer",
	UnitKindTexture:       "Texture",
	UnitKindImage:         "Image",
}

func (k UnitKind) String() string {
	str, ok := unitKindStrings[k]
	if !ok {
		return "unknown UnitKind"
	}
	return str
}

// UnitBinding is one shader resource resolved to the GL unit it is bound through. Arrays
// occupy Count consecutive units starting at Unit.
type UnitBinding struct {
	Name    string
	Kind    UnitKind
	Set     uint32
	Binding uint32
	Count   uint32
	Unit    int
}

// ProgramBindings is the flat binding table of one GL program
type ProgramBindings struct {
	UniformBlocks []UnitBinding
	StorageBlocks []UnitBinding
	SamplerUnits  []UnitBinding
	ImageUnits    []UnitBinding
	InputTextures []UnitBinding
	byName        map[string]UnitBinding
}

// Lookup returns the binding of a named resource
func (b *ProgramBindings) Lookup(name string) (UnitBinding, bool) {
	binding, ok := b.byName[name]
	return binding, ok
}

// NewBuiltinMapper creates the binding mapper for the built-in descriptor sets. The global and
// local sets are packed first and the material set takes the units that remain.
func NewBuiltinMapper(logger *slog.Logger, caps gfx.DeviceCaps, options binding.CreateOptions) (*binding.Mapper, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	global, err := ubo.GlobalSetLayout()
	if err != nil {
		return nil, err
	}
	local, err := ubo.LocalSetLayout()
	if err != nil {
		return nil, err
	}

	info, err := binding.NewMappingInfo(caps, uint32(ubo.SetIndexMaterial), []binding.SetLayout{
		{Set: uint32(global.Set), Layout: global.Info},
		{Set: uint32(local.Set), Layout: local.Info},
	})
	if err != nil {
		logger.Error("built-in sets do not fit the device", slog.Any("error", err))
		return nil, err
	}

	return binding.New(logger, caps, info, options)
}

type programResource struct {
	name           string
	kind           UnitKind
	set            uint32
	binding        uint32
	count          uint32
	descriptorType gfx.DescriptorType
}

func programResources(shader *gfx.ShaderInfo) ([]programResource, error) {
	if len(shader.Samplers) > 0 {
		return nil, errors.Wrapf(gfx.ErrInvalidUsageCombination, "shader %s declares separate sampler %s, which GLES cannot bind", shader.Name, shader.Samplers[0].Name)
	}

	var resources []programResource
	for _, block := range shader.Blocks {
		resources = append(resources, programResource{block.Name, UnitKindUniformBuffer, block.Set, block.Binding, block.Count, gfx.DescriptorTypeUniformBuffer})
	}
	for _, buffer := range shader.Buffers {
		resources = append(resources, programResource{buffer.Name, UnitKindStorageBuffer, buffer.Set, buffer.Binding, buffer.Count, gfx.DescriptorTypeStorageBuffer})
	}
	for _, samplerTexture := range shader.SamplerTextures {
		resources = append(resources, programResource{samplerTexture.Name, UnitKindTexture, samplerTexture.Set, samplerTexture.Binding, samplerTexture.Count, gfx.DescriptorTypeSamplerTexture})
	}
	for _, texture := range shader.Textures {
		resources = append(resources, programResource{texture.Name, UnitKindTexture, texture.Set, texture.Binding, texture.Count, gfx.DescriptorTypeTexture})
	}
	for _, image := range shader.Images {
		resources = append(resources, programResource{image.Name, UnitKindImage, image.Set, image.Binding, image.Count, gfx.DescriptorTypeStorageImage})
	}
	for _, input := range shader.SubpassInputs {
		resources = append(resources, programResource{input.Name, UnitKindTexture, input.Set, input.Binding, input.Count, gfx.DescriptorTypeInputAttachment})
	}
	return resources, nil
}

// NewProgramBindings resolves every resource a shader declares to its GL unit. Input
// attachments are read as textures and are listed separately as well as among the sampler
// units.
func NewProgramBindings(mapper *binding.Mapper, shader *gfx.ShaderInfo) (*ProgramBindings, error) {
	resources, err := programResources(shader)
	if err != nil {
		return nil, err
	}

	bindings := &ProgramBindings{
		byName: make(map[string]UnitBinding, len(resources)),
	}

	for _, resource := range resources {
		count := max(resource.count, 1)
		unit, err := mapper.Slot(resource.set, resource.binding, resource.descriptorType)
		if err != nil {
			return nil, errors.Wrapf(err, "shader %s resource %s", shader.Name, resource.name)
		}
		if count > 1 {
			_, err = mapper.Slot(resource.set, resource.binding+count-1, resource.descriptorType)
			if err != nil {
				return nil, errors.Wrapf(err, "shader %s resource %s", shader.Name, resource.name)
			}
		}

		unitBinding := UnitBinding{
			Name:    resource.name,
			Kind:    resource.kind,
			Set:     resource.set,
			Binding: resource.binding,
			Count:   count,
			Unit:    unit,
		}

		_, duplicate := bindings.byName[resource.name]
		if duplicate {
			return nil, errors.Newf("shader %s declares resource %s more than once", shader.Name, resource.name)
		}
		bindings.byName[resource.name] = unitBinding

		switch resource.kind {
		case UnitKindUniformBuffer:
			bindings.UniformBlocks = append(bindings.UniformBlocks, unitBinding)
		case UnitKindStorageBuffer:
			bindings.StorageBlocks = append(bindings.StorageBlocks, unitBinding)
		case UnitKindTexture:
			bindings.SamplerUnits = append(bindings.SamplerUnits, unitBinding)
			if resource.descriptorType == gfx.DescriptorTypeInputAttachment {
				bindings.InputTextures = append(bindings.InputTextures, unitBinding)
			}
		case UnitKindImage:
			bindings.ImageUnits = append(bindings.ImageUnits, unitBinding)
		}
	}

	for _, list := range [][]UnitBinding{bindings.UniformBlocks, bindings.StorageBlocks, bindings.SamplerUnits, bindings.ImageUnits, bindings.InputTextures} {
		sort.Slice(list, func(a, b int) bool {
			return list[a].Unit < list[b].Unit
		})
	}

	err = checkUnitOverlap(shader.Name, bindings.UniformBlocks)
	if err == nil {
		err = checkUnitOverlap(shader.Name, bindings.StorageBlocks)
	}
	if err == nil {
		err = checkUnitOverlap(shader.Name, bindings.SamplerUnits)
	}
	if err == nil {
		err = checkUnitOverlap(shader.Name, bindings.ImageUnits)
	}
	if err != nil {
		return nil, err
	}

	return bindings, nil
}

func checkUnitOverlap(shaderName string, sorted []UnitBinding) error {
	for index := 1; index < len(sorted); index++ {
		previous := sorted[index-1]
		if previous.Unit+int(previous.Count) > sorted[index].Unit {
			return errors.Wrapf(binding.ErrSlotCollision, "shader %s resources %s and %s share %s unit %d",
				shaderName, previous.Name, sorted[index].Name, sorted[index].Kind, sorted[index].Unit)
		}
	}
	return nil
}
