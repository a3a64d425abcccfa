package gpu

import (
	"fmt"

	"github.com/gogpu/glyphfill"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device is a GPU device opened by OpenDevice.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	// Adapter is the name of the selected adapter.
	Adapter string

	instance hal.Instance
}

// OpenDevice opens a Vulkan device, preferring a discrete or integrated
// GPU over software adapters.
func OpenDevice() (*Device, error) {
	return openDevice(gputypes.BackendVulkan)
}

func openDevice(kind gputypes.Backend) (*Device, error) {
	backend, ok := hal.GetBackend(kind)
	if !ok {
		return nil, fmt.Errorf("glyph gpu: backend %v not available", kind)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("glyph gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("glyph gpu: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("glyph gpu: open device: %w", err)
	}

	glyphfill.Logger().Info("glyph gpu: device opened", "adapter", selected.Info.Name)
	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Adapter:  selected.Info.Name,
		instance: instance,
	}, nil
}

// Close destroys the device and its instance. Safe to call multiple times.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
