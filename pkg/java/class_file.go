package java

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const classFileMagic = 0xCAFEBABE

// Access flags for classes and interfaces (JVMS §4.1).
const (
	ACC_PUBLIC     uint16 = 0x0001
	ACC_FINAL      uint16 = 0x0010
	ACC_SUPER      uint16 = 0x0020
	ACC_INTERFACE  uint16 = 0x0200
	ACC_ABSTRACT   uint16 = 0x0400
	ACC_SYNTHETIC  uint16 = 0x1000
	ACC_ANNOTATION uint16 = 0x2000
	ACC_ENUM       uint16 = 0x4000
	ACC_MODULE     uint16 = 0x8000
)

// Constant pool tags.
const (
	constantUtf8               = 1
	constantInteger            = 3
	constantFloat              = 4
	constantLong               = 5
	constantDouble             = 6
	constantClass              = 7
	constantString             = 8
	constantFieldref           = 9
	constantMethodref          = 10
	constantInterfaceMethodref = 11
	constantNameAndType        = 12
	constantMethodHandle       = 15
	constantMethodType         = 16
	constantDynamic            = 17
	constantInvokeDynamic      = 18
	constantModule             = 19
	constantPackage            = 20
)

// ClassFormatError is returned when bytes cannot be read as a class file.
type ClassFormatError struct {
	Offset int
	Reason string
}

func (e *ClassFormatError) Error() string {
	return fmt.Sprintf("class format error at offset %d: %s", e.Offset, e.Reason)
}

// ClassFile is the header portion of a JVM class file: everything up to and
// including the interface table.  Fields, methods and attributes are not
// decoded.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16

	name       string
	superName  string
	interfaces []string
	size       int
}

// NewClassFile constructs a class file for the given internal names.  An
// empty superName is only valid for java/lang/Object.
func NewClassFile(name, superName string, access uint16, interfaces ...string) *ClassFile {
	return &ClassFile{
		MajorVersion: 52,
		AccessFlags:  access,
		name:         name,
		superName:    superName,
		interfaces:   interfaces,
	}
}

// ReadClassFile parses the header of the given class file bytes.
func ReadClassFile(data []byte) (*ClassFile, error) {
	r := &classReader{data: data}
	c := &ClassFile{}
	if err := c.read(r); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the internal name of the class (e.g. "com/foo/Bar").
func (c *ClassFile) Name() string {
	return c.name
}

// SuperName returns the internal name of the superclass, or "" for
// java/lang/Object and module-info.
func (c *ClassFile) SuperName() string {
	return c.superName
}

// Interfaces returns the internal names of the directly implemented
// interfaces.
func (c *ClassFile) Interfaces() []string {
	return c.interfaces
}

// PackageName returns the dotted package name of the class.
func (c *ClassFile) PackageName() string {
	return PackageOf(BinaryName(c.name))
}

// Size is the number of bytes the header was read from; zero for class files
// that were constructed rather than read.
func (c *ClassFile) Size() int {
	return c.size
}

func (c *ClassFile) IsAnnotation() bool {
	return c.AccessFlags&ACC_ANNOTATION != 0
}

func (c *ClassFile) IsInterface() bool {
	return c.AccessFlags&ACC_INTERFACE != 0
}

func (c *ClassFile) IsSynthetic() bool {
	return c.AccessFlags&ACC_SYNTHETIC != 0
}

func (c *ClassFile) IsEnum() bool {
	return c.AccessFlags&ACC_ENUM != 0
}

func (c *ClassFile) String() string {
	return fmt.Sprintf("%s (access=0x%04x, super=%s)", c.name, c.AccessFlags, c.superName)
}

func (c *ClassFile) read(r *classReader) error {
	if magic := r.u4(); magic != classFileMagic {
		if r.err != nil {
			return r.err
		}
		return &ClassFormatError{Offset: 0, Reason: fmt.Sprintf("bad magic 0x%08x", magic)}
	}
	c.MinorVersion = r.u2()
	c.MajorVersion = r.u2()

	count := int(r.u2())
	if r.err != nil {
		return r.err
	}
	utf8 := make(map[uint16]string)
	classes := make(map[uint16]uint16)
	for i := 1; i < count; i++ {
		tag := r.u1()
		switch tag {
		case constantUtf8:
			n := int(r.u2())
			utf8[uint16(i)] = string(r.bytes(n))
		case constantClass:
			classes[uint16(i)] = r.u2()
		case constantString, constantMethodType, constantModule, constantPackage:
			r.skip(2)
		case constantMethodHandle:
			r.skip(3)
		case constantInteger, constantFloat, constantFieldref, constantMethodref,
			constantInterfaceMethodref, constantNameAndType, constantDynamic, constantInvokeDynamic:
			r.skip(4)
		case constantLong, constantDouble:
			r.skip(8)
			i++ // eight-byte constants take two slots
		default:
			if r.err != nil {
				return r.err
			}
			return &ClassFormatError{Offset: r.pos - 1, Reason: fmt.Sprintf("unknown constant pool tag %d at index %d", tag, i)}
		}
		if r.err != nil {
			return r.err
		}
	}

	className := func(index uint16) (string, error) {
		if index == 0 {
			return "", nil
		}
		nameIndex, ok := classes[index]
		if !ok {
			return "", &ClassFormatError{Offset: r.pos, Reason: fmt.Sprintf("constant %d is not a class", index)}
		}
		name, ok := utf8[nameIndex]
		if !ok {
			return "", &ClassFormatError{Offset: r.pos, Reason: fmt.Sprintf("constant %d is not utf8", nameIndex)}
		}
		return name, nil
	}

	c.AccessFlags = r.u2()
	thisClass := r.u2()
	superClass := r.u2()
	if r.err != nil {
		return r.err
	}

	var err error
	if thisClass == 0 {
		return &ClassFormatError{Offset: r.pos, Reason: "missing this_class"}
	}
	if c.name, err = className(thisClass); err != nil {
		return err
	}
	if c.superName, err = className(superClass); err != nil {
		return err
	}

	n := int(r.u2())
	for i := 0; i < n; i++ {
		iface, err := className(r.u2())
		if r.err != nil {
			return r.err
		}
		if err != nil {
			return err
		}
		c.interfaces = append(c.interfaces, iface)
	}
	c.size = r.pos
	return r.err
}

// Marshal encodes the class file with an empty field, method and attribute
// table.
func (c *ClassFile) Marshal() []byte {
	var pool bytes.Buffer
	count := uint16(1)
	indexes := make(map[string]uint16)

	classIndex := func(name string) uint16 {
		if name == "" {
			return 0
		}
		if index, ok := indexes[name]; ok {
			return index
		}
		pool.WriteByte(constantUtf8)
		binary.Write(&pool, binary.BigEndian, uint16(len(name)))
		pool.WriteString(name)
		pool.WriteByte(constantClass)
		binary.Write(&pool, binary.BigEndian, count)
		index := count + 1
		count += 2
		indexes[name] = index
		return index
	}

	thisClass := classIndex(c.name)
	superClass := classIndex(c.superName)
	ifaces := make([]uint16, len(c.interfaces))
	for i, iface := range c.interfaces {
		ifaces[i] = classIndex(iface)
	}

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(classFileMagic))
	binary.Write(&out, binary.BigEndian, c.MinorVersion)
	binary.Write(&out, binary.BigEndian, c.MajorVersion)
	binary.Write(&out, binary.BigEndian, count)
	out.Write(pool.Bytes())
	binary.Write(&out, binary.BigEndian, c.AccessFlags)
	binary.Write(&out, binary.BigEndian, thisClass)
	binary.Write(&out, binary.BigEndian, superClass)
	binary.Write(&out, binary.BigEndian, uint16(len(ifaces)))
	for _, index := range ifaces {
		binary.Write(&out, binary.BigEndian, index)
	}
	binary.Write(&out, binary.BigEndian, uint16(0)) // fields
	binary.Write(&out, binary.BigEndian, uint16(0)) // methods
	binary.Write(&out, binary.BigEndian, uint16(0)) // attributes
	return out.Bytes()
}

// classReader is a big-endian cursor that latches the first error.
type classReader struct {
	data []byte
	pos  int
	err  error
}

func (r *classReader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = &ClassFormatError{Offset: r.pos, Reason: fmt.Sprintf("truncated: need %d bytes, have %d", n, len(r.data)-r.pos)}
		return false
	}
	return true
}

func (r *classReader) u1() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *classReader) u2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *classReader) u4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *classReader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v
}

func (r *classReader) skip(n int) {
	if r.need(n) {
		r.pos += n
	}
}
