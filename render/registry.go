package render

var atlases = map[string]*Atlas{}

// RegisterAtlas stores an atlas by its key.
func RegisterAtlas(a *Atlas) {
	if a == nil || a.Key == "" || a.Image == nil {
		return
	}
	atlases[a.Key] = a
}

// GetAtlas returns a cached atlas by key.
func GetAtlas(key string) *Atlas {
	if key == "" {
		return nil
	}
	return atlases[key]
}

// ForgetAtlas drops key from the cache so the next LoadAtlas rereads it.
func ForgetAtlas(key string) {
	if a, ok := atlases[key]; ok {
		a.Image.Deallocate()
		delete(atlases, key)
	}
}
