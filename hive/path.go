package hive

import "strings"

// rootAliases are the well-known root-key names a path may optionally be
// prefixed with. A hive file corresponds to exactly one of these by
// convention; the alias is recognized and consumed, never validated
// against which root the hive actually represents.
var rootAliases = map[string]bool{
	"HKLM": true, "HKEY_LOCAL_MACHINE": true,
	"HKCR": true, "HKEY_CLASSES_ROOT": true,
	"HKCU": true, "HKEY_CURRENT_USER": true,
	"HKU": true, "HKEY_USERS": true,
	"HKCC": true, "HKEY_CURRENT_CONFIG": true,
}

func isRootAlias(seg string) bool {
	return rootAliases[strings.ToUpper(seg)]
}

func splitPath(path string) []string {
	path = strings.Trim(path, `\/`)
	if path == "" {
		return nil
	}
	return strings.FieldsFunc(path, func(r rune) bool { return r == '\\' || r == '/' })
}

// Get resolves a backslash- or slash-separated path starting from the
// hive's root key, e.g. "Software\Microsoft\Windows". An optional leading
// root alias (HKLM, HKEY_CURRENT_USER, ...) is matched case-insensitively
// and discarded; every remaining segment is matched against a key's
// subkeys by exact, case-sensitive name.
func (h *Hive) Get(path string) (*Key, error) {
	k, err := h.Root()
	if err != nil {
		return nil, err
	}
	segs := splitPath(path)
	if len(segs) > 0 && isRootAlias(segs[0]) {
		segs = segs[1:]
	}
	for _, seg := range segs {
		k, err = k.Subkey(seg)
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}

// WalkFunc is called once per key during a Walk. Returning an error stops
// the traversal and is returned from Walk.
type WalkFunc func(k *Key, path string) error

// Walk performs a depth-first traversal of k's subtree, calling fn for k
// itself and every descendant. path is the backslash-joined path from the
// walk's starting key to the key being visited; the starting key itself is
// reported with path == "".
func Walk(k *Key, fn WalkFunc) error {
	return walk(k, "", fn)
}

func walk(k *Key, path string, fn WalkFunc) error {
	if err := fn(k, path); err != nil {
		return err
	}
	subkeys, err := k.Subkeys()
	if err != nil {
		return err
	}
	for i := 0; i < subkeys.Len(); i++ {
		child, err := subkeys.At(i)
		if err != nil {
			return err
		}
		name, err := child.Name()
		if err != nil {
			return err
		}
		childPath := name
		if path != "" {
			childPath = path + `\` + name
		}
		if err := walk(child, childPath, fn); err != nil {
			return err
		}
	}
	return nil
}
