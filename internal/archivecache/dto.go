package archivecache

import "jmatch/internal/model"

// environmentDTO is the JSON-serializable projection of a model.Environment.
// model.Constant and model.Instr are already plain exported structs and
// round-trip directly; model.Class/Method/Field carry an unexported
// obfuscated flag derived from an injected predicate, so those three need
// an explicit DTO that omits the derived flag and lets fromDTO recompute it
// through model.Builder on load.
type environmentDTO struct {
	ArchiveName string     `json:"archive_name"`
	Classes     []classDTO `json:"classes"`
}

type classDTO struct {
	Name        string      `json:"name"`
	SuperName   string      `json:"super_name"`
	Interfaces  []string    `json:"interfaces"`
	AccessFlags uint16      `json:"access_flags"`
	Methods     []methodDTO `json:"methods"`
	Fields      []fieldDTO  `json:"fields"`
}

type methodDTO struct {
	Name         string           `json:"name"`
	Descriptor   string           `json:"descriptor"`
	AccessFlags  uint16           `json:"access_flags"`
	Exceptions   []string         `json:"exceptions,omitempty"`
	Instructions []model.Instr    `json:"instructions,omitempty"`
	Constants    []model.Constant `json:"constants,omitempty"`
}

type fieldDTO struct {
	Name         string          `json:"name"`
	Descriptor   string          `json:"descriptor"`
	AccessFlags  uint16          `json:"access_flags"`
	InitialValue *model.Constant `json:"initial_value,omitempty"`
}

func toDTO(env *model.Environment) environmentDTO {
	dto := environmentDTO{ArchiveName: env.ArchiveName}
	for _, name := range env.SortedClassNames() {
		c := env.Classes[name]
		cd := classDTO{
			Name:        c.Name,
			SuperName:   c.SuperName,
			Interfaces:  c.Interfaces,
			AccessFlags: c.AccessFlags,
		}
		for _, m := range c.Methods {
			cd.Methods = append(cd.Methods, methodDTO{
				Name:         m.Name,
				Descriptor:   m.Descriptor,
				AccessFlags:  m.AccessFlags,
				Exceptions:   m.Exceptions,
				Instructions: m.Instructions,
				Constants:    m.Constants,
			})
		}
		for _, f := range c.Fields {
			cd.Fields = append(cd.Fields, fieldDTO{
				Name:         f.Name,
				Descriptor:   f.Descriptor,
				AccessFlags:  f.AccessFlags,
				InitialValue: f.InitialValue,
			})
		}
		dto.Classes = append(dto.Classes, cd)
	}
	return dto
}

// fromDTO rebuilds an Environment from its serialized projection, applying
// pred fresh rather than trusting any cached obfuscation flag.
func fromDTO(dto environmentDTO, pred model.ObfuscationPredicate) *model.Environment {
	builder := model.NewBuilder(dto.ArchiveName, pred)
	for _, cd := range dto.Classes {
		class := builder.AddClass(cd.Name, cd.SuperName, cd.Interfaces, cd.AccessFlags)
		for _, fd := range cd.Fields {
			builder.AddField(class, fd.Name, fd.Descriptor, fd.AccessFlags, fd.InitialValue)
		}
		for _, md := range cd.Methods {
			builder.AddMethod(class, md.Name, md.Descriptor, md.AccessFlags, md.Exceptions, md.Instructions, md.Constants)
		}
	}
	return builder.Build()
}
