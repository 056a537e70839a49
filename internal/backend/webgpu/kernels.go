//go:build windows

// Package webgpu implements the accelerator kernel set with WGSL compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"github.com/born-ml/autograph/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Kernels runs relu, relu-gradient and softmax on a WebGPU device.
// Only float32 tensors are supported.
type Kernels struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex
}

// New creates the WebGPU kernel set.
// Returns an error if WebGPU is not available or initialization fails.
func New() (k *Kernels, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			k = nil
			err = errors.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrap(instanceErr, "webgpu: failed to create instance")
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrap(adapterErr, "webgpu: failed to request adapter")
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(deviceErr, "webgpu: failed to request device")
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("webgpu: failed to get queue")
	}

	return &Kernels{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

// IsAvailable checks if a WebGPU adapter can be obtained on this system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Name returns "webgpu".
func (k *Kernels) Name() string {
	return "webgpu"
}

// Release releases all WebGPU resources.
func (k *Kernels) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, p := range k.pipelines {
		p.Release()
	}
	k.pipelines = nil
	for _, s := range k.shaders {
		s.Release()
	}
	k.shaders = nil

	if k.queue != nil {
		k.queue.Release()
		k.queue = nil
	}
	if k.device != nil {
		k.device.Release()
		k.device = nil
	}
	if k.adapter != nil {
		k.adapter.Release()
		k.adapter = nil
	}
	if k.instance != nil {
		k.instance.Release()
		k.instance = nil
	}
}

// Relu computes out = max(in, 0).
func (k *Kernels) Relu(in, out *tensor.RawTensor) error {
	if err := checkFloat32("Relu", out, in); err != nil {
		return err
	}
	return k.runUnaryOp(in, out, "relu", reluShader)
}

// ReluGradient computes out = sign(max(in, 0)) * grad.
func (k *Kernels) ReluGradient(in, grad, out *tensor.RawTensor) error {
	if err := checkFloat32("ReluGradient", out, in, grad); err != nil {
		return err
	}
	return k.runBinaryOp(in, grad, out, "relu_gradient", reluGradientShader)
}

// Softmax computes the softmax of in over its last axis.
func (k *Kernels) Softmax(in, out *tensor.RawTensor) error {
	if err := checkFloat32("Softmax", out, in); err != nil {
		return err
	}
	return k.runSoftmax(in, out)
}

func checkFloat32(op string, out *tensor.RawTensor, inputs ...*tensor.RawTensor) error {
	for _, in := range inputs {
		if in.DType() != tensor.Float32 || out.DType() != tensor.Float32 {
			return errors.Wrapf(tensor.ErrUnsupportedDType, "webgpu.%s: only float32 is supported, got %s", op, in.DType())
		}
		if !in.Shape().Equal(out.Shape()) {
			return errors.Wrapf(tensor.ErrShapeMismatch, "webgpu.%s: %s vs %s", op, in.Shape(), out.Shape())
		}
	}
	return nil
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached by name.
func (k *Kernels) compileShader(name, code string) *wgpu.ShaderModule {
	k.mu.RLock()
	if shader, exists := k.shaders[name]; exists {
		k.mu.RUnlock()
		return shader
	}
	k.mu.RUnlock()

	shader := k.device.CreateShaderModuleWGSL(code)

	k.mu.Lock()
	k.shaders[name] = shader
	k.mu.Unlock()
	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (k *Kernels) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	k.mu.RLock()
	if pipeline, exists := k.pipelines[name]; exists {
		k.mu.RUnlock()
		return pipeline
	}
	k.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := k.device.CreateComputePipelineSimple(nil, shader, "main")

	k.mu.Lock()
	k.pipelines[name] = pipeline
	k.mu.Unlock()
	return pipeline
}

// createBuffer creates a GPU buffer initialized with data.
func (k *Kernels) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := k.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()
	return buffer
}

// createParams creates a 16-byte uniform buffer holding up to four u32 values.
func (k *Kernels) createParams(values ...uint32) *wgpu.Buffer {
	params := make([]byte, 16)
	for i, v := range values {
		binary.LittleEndian.PutUint32(params[i*4:i*4+4], v)
	}
	buffer := k.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             16,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, 16)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), 16), params)
	buffer.Unmap()
	return buffer
}

// readBuffer copies a storage buffer back into dst through a staging buffer.
func (k *Kernels) readBuffer(src *wgpu.Buffer, dst []byte) error {
	size := uint64(len(dst))
	staging := k.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := k.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	k.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(k.device, wgpu.MapModeRead, 0, size); err != nil {
		return errors.Wrap(err, "webgpu: failed to map staging buffer")
	}
	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(dst, unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()
	return nil
}

// dispatch binds storage buffers in order followed by params, runs the
// pipeline over the given number of invocations, and reads result into out.
func (k *Kernels) dispatch(name, code string, invocations uint32, params *wgpu.Buffer,
	result *wgpu.Buffer, out *tensor.RawTensor, storage ...*wgpu.Buffer) error {
	pipeline := k.getOrCreatePipeline(name, k.compileShader(name, code))

	//nolint:gosec // G115: ByteSize() is non-negative
	size := uint64(out.ByteSize())
	entries := make([]wgpu.BindGroupEntry, 0, len(storage)+2)
	for i, buf := range storage {
		//nolint:gosec // G115: binding index is small
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, size))
	}
	//nolint:gosec // G115: binding index is small
	entries = append(entries,
		wgpu.BufferBindingEntry(uint32(len(storage)), result, 0, size),
		wgpu.BufferBindingEntry(uint32(len(storage)+1), params, 0, 16),
	)

	bindGroup := k.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := k.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups((invocations+workgroupSize-1)/workgroupSize, 1, 1)
	pass.End()
	k.queue.Submit(encoder.Finish(nil))

	return k.readBuffer(result, out.Data())
}

func (k *Kernels) newResultBuffer(out *tensor.RawTensor) *wgpu.Buffer {
	//nolint:gosec // G115: ByteSize() is non-negative
	return k.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  uint64(out.ByteSize()),
	})
}

func (k *Kernels) runUnaryOp(in, out *tensor.RawTensor, name, code string) error {
	n := in.NumElements()
	if n == 0 {
		return nil
	}
	input := k.createBuffer(in.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer input.Release()
	result := k.newResultBuffer(out)
	defer result.Release()
	//nolint:gosec // G115: element count is non-negative
	params := k.createParams(uint32(n))
	defer params.Release()

	//nolint:gosec // G115: element count is non-negative
	return k.dispatch(name, code, uint32(n), params, result, out, input)
}

func (k *Kernels) runBinaryOp(a, b, out *tensor.RawTensor, name, code string) error {
	n := a.NumElements()
	if n == 0 {
		return nil
	}
	bufA := k.createBuffer(a.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()
	bufB := k.createBuffer(b.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()
	result := k.newResultBuffer(out)
	defer result.Release()
	//nolint:gosec // G115: element count is non-negative
	params := k.createParams(uint32(n))
	defer params.Release()

	//nolint:gosec // G115: element count is non-negative
	return k.dispatch(name, code, uint32(n), params, result, out, bufA, bufB)
}

func (k *Kernels) runSoftmax(in, out *tensor.RawTensor) error {
	rowLen := in.Shape().LastDim()
	if rowLen == 0 || in.NumElements() == 0 {
		return nil
	}
	numRows := in.NumElements() / rowLen

	input := k.createBuffer(in.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer input.Release()
	result := k.newResultBuffer(out)
	defer result.Release()
	//nolint:gosec // G115: shape dimensions are non-negative
	params := k.createParams(uint32(numRows), uint32(rowLen))
	defer params.Release()

	//nolint:gosec // G115: row count is non-negative
	return k.dispatch("softmax", softmaxShader, uint32(numRows), params, result, out, input)
}
