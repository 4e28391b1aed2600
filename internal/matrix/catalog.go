package matrix

// Catalog is the ordered table of known packages. It is built once at
// startup and never mutated; declaration order is meaningful for version
// indexing.
type Catalog struct {
	packages []Descriptor
	keys     map[string]struct{}
}

// New assembles a catalog from descriptors in declaration order.
func New(packages ...Descriptor) *Catalog {
	keys := make(map[string]struct{}, len(packages))
	for _, d := range packages {
		keys[d.Key()] = struct{}{}
	}
	return &Catalog{packages: packages, keys: keys}
}

// Packages returns the descriptors in declaration order.
func (c *Catalog) Packages() []Descriptor { return c.packages }

func (c *Catalog) has(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// catalogBuilder accumulates descriptors and stops at the first
// construction error.
type catalogBuilder struct {
	packages []Descriptor
	err      error
}

func (b *catalogBuilder) add(d Descriptor, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.packages = append(b.packages, d)
}

func (b *catalogBuilder) catalog() (*Catalog, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.packages...), nil
}

// Default is the built-in table of tested frameworks: the plain entries,
// the driver-keyed ones and the wheels only reachable as direct downloads.
func Default(env *Env) (*Catalog, error) {
	var b catalogBuilder
	b.add(NewPlain(env, "opencv-python", "", []Constraint{
		{Version: "4.2.0.32"},
	}), nil)
	b.add(NewDriverKeyed(env, "cupy", "cupy-cuda"+DriverPlaceholder, map[string][]Constraint{
		"90":  {{Version: "7.3.0"}},
		"100": {{Version: "7.3.0"}},
	}))
	b.add(NewDriverKeyed(env, "mxnet", "mxnet-cu"+DriverPlaceholder, map[string][]Constraint{
		"90":  {{Version: "1.6.0"}},
		"100": {{Version: "1.5.1"}},
	}))
	b.add(NewDriverKeyed(env, "tensorflow-gpu", "", map[string][]Constraint{
		"90": {
			{Version: "1.12.0", MaxPython: "3.7"},
		},
		"100": {
			{Version: "1.15.2", MaxPython: "3.7"},
			{Version: "2.1.0", MaxPython: "3.7"},
			{Version: "2.2.0"},
		},
	}))
	b.add(NewRemote(env, "torch", "", map[string][]Constraint{
		"90":  {{Version: "http://download.pytorch.org/whl/cu{driver}/torch-1.1.0-{platform}.whl"}},
		"100": {{Version: "http://download.pytorch.org/whl/cu{driver}/torch-1.4.0+cu{driver}-{platform}.whl"}},
	}))
	b.add(NewRemote(env, "torchvision", "", map[string][]Constraint{
		"90":  {{Version: "https://download.pytorch.org/whl/cu{driver}/torchvision-0.3.0-{platform}.whl"}},
		"100": {{Version: "https://download.pytorch.org/whl/cu{driver}/torchvision-0.5.0+cu{driver}-{platform}.whl"}},
	}))
	b.add(NewRemote(env, "paddle", "", map[string][]Constraint{
		"90":  {{Version: "https://paddle-wheel.bj.bcebos.com/gcc54/latest-gpu-cuda9-cudnn7-openblas/paddlepaddle_gpu-latest-{platform}.whl"}},
		"100": {{Version: "https://paddle-wheel.bj.bcebos.com/gcc54/latest-gpu-cuda10-cudnn7-openblas/paddlepaddle_gpu-latest-{platform}.whl"}},
	}))
	return b.catalog()
}
