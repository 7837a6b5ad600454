package value

// Equal implements the round-trip equality law from spec.md §8.1: exact
// for all variants except Dictionary (compared by key set, since encode
// order is insertion order and decode order matches it but isn't
// contractually meaningful) and Set (compared as a multiset, since wire
// order is not part of the contract).
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagString:
		return a.Str == b.Str
	case TagData:
		return bytesEqual(a.Bytes, b.Bytes)
	case TagIntegerLL:
		return a.Int == b.Int
	case TagDouble, TagDate:
		return a.Num == b.Num
	case TagBoolTrue, TagBoolFalse, TagNull:
		return true
	case TagDictionary:
		return dictEqual(a.Dict, b.Dict)
	case TagArray:
		return arrayEqual(a.Items, b.Items)
	case TagSet:
		return multisetEqual(a.Items, b.Items)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dictEqual(a, b []DictEntry) bool {
	if len(a) != len(b) {
		return false
	}
	bm := make(map[string]Value, len(b))
	for _, e := range b {
		bm[e.Key] = e.Value
	}
	for _, e := range a {
		bv, ok := bm[e.Key]
		if !ok || !Equal(e.Value, bv) {
			return false
		}
	}
	return true
}

func arrayEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func multisetEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, av := range a {
		found := false
		for i, bv := range b {
			if used[i] {
				continue
			}
			if Equal(av, bv) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
