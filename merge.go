package dynjson

// Merge merges other into v in place.
//
// Objects merge key by key, recursing into keys present on both sides.
// Arrays concatenate: other's elements are appended after v's. For scalars
// other wins. v and other must have the same variant, otherwise Merge
// returns an error of KindWrongType and leaves v unchanged; below the top
// level a variant mismatch simply lets other replace the old entry.
func (v *Value) Merge(other Value) error {
	if v.typ != other.typ {
		return newValueError(KindWrongType, "",
			"cannot merge %s into %s", other.typ, v.typ)
	}
	*v = merge(*v, other)
	return nil
}

// Merged is like Merge but returns the result and leaves v untouched.
func (v Value) Merged(other Value) (Value, error) {
	result := v.Clone()
	if err := result.Merge(other); err != nil {
		return Value{}, err
	}
	return result, nil
}

func merge(base, other Value) Value {
	if base.typ != other.typ {
		return other
	}
	switch base.typ {
	case TypeObject:
		obj := newObject()
		for pair := base.obj.Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, pair.Value)
		}
		for pair := other.obj.Oldest(); pair != nil; pair = pair.Next() {
			if existing, ok := obj.Get(pair.Key); ok {
				obj.Set(pair.Key, merge(existing, pair.Value))
				continue
			}
			obj.Set(pair.Key, pair.Value)
		}
		return Value{typ: TypeObject, obj: obj}
	case TypeArray:
		arr := make([]Value, 0, len(base.arr)+len(other.arr))
		arr = append(arr, base.arr...)
		arr = append(arr, other.arr...)
		return Value{typ: TypeArray, arr: arr}
	default:
		return other
	}
}
