package assets

type Loader interface {
	Load(path string, params interface{}) (*Resource, error) // `interface{}` here allows loaders to accept type-specific options
	Unload(*Resource) error
}
