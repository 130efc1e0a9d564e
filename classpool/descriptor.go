package classpool

// DescriptorClassNames returns the internal names of the classes referenced by
// a field or method descriptor, in order of appearance and without
// duplicates. Primitive and array markers are skipped.
//
// Example:
//
//	DescriptorClassNames("(Ljava/lang/String;[Lcom/example/Foo;I)V")
//	// ["java/lang/String", "com/example/Foo"]
func DescriptorClassNames(descriptor string) []string {
	var names []string
	for i := 0; i < len(descriptor); i++ {
		if descriptor[i] != 'L' {
			continue
		}
		end := i + 1
		for end < len(descriptor) && descriptor[end] != ';' {
			end++
		}
		if end >= len(descriptor) {
			break
		}
		name := descriptor[i+1 : end]
		if name != "" && !containsString(names, name) {
			names = append(names, name)
		}
		i = end
	}
	return names
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
