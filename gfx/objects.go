package gfx

// Buffer is a backend buffer handle. Info structs refer to buffers through this interface so
// validation can inspect the info the buffer was created from.
type Buffer interface {
	Info() BufferInfo
}

type Texture interface {
	Info() TextureInfo
}

type Sampler interface {
	Info() SamplerInfo
}

type Shader interface {
	Info() ShaderInfo
}

type RenderPass interface {
	Info() RenderPassInfo
}

type DescriptorSetLayout interface {
	Info() DescriptorSetLayoutInfo
}

type PipelineLayout interface {
	Info() PipelineLayoutInfo
}

type Queue interface {
	Info() QueueInfo
}
