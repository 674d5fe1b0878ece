package gfx

type fakeBuffer struct {
	info BufferInfo
}

func (b *fakeBuffer) Info() BufferInfo {
	return b.info
}

type fakeTexture struct {
	info TextureInfo
}

func (t *fakeTexture) Info() TextureInfo {
	return t.info
}

type fakeRenderPass struct {
	info RenderPassInfo
}

func (p *fakeRenderPass) Info() RenderPassInfo {
	return p.info
}

type fakeShader struct {
	info ShaderInfo
}

func (s *fakeShader) Info() ShaderInfo {
	return s.info
}

type fakeSetLayout struct {
	info DescriptorSetLayoutInfo
}

func (l *fakeSetLayout) Info() DescriptorSetLayoutInfo {
	return l.info
}

type fakePipelineLayout struct {
	info PipelineLayoutInfo
}

func (l *fakePipelineLayout) Info() PipelineLayoutInfo {
	return l.info
}

func attachmentTexture(format Format, usage TextureUsage) *fakeTexture {
	info := DefaultTextureInfo()
	info.Format = format
	info.Usage = usage
	info.Width = 64
	info.Height = 64
	return &fakeTexture{info: info}
}
