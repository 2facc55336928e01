package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File types accepted on upload.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// RootID is the parent of top-level files. It is rendered as 0 in JSON.
var RootID = primitive.NilObjectID

type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	IsPublic  bool               `bson:"isPublic" json:"isPublic"`
	ParentID  primitive.ObjectID `bson:"parentId" json:"parentId"`
	LocalPath string             `bson:"localPath,omitempty" json:"-"` // server-internal, never exposed
}

// IsFolder reports whether the file can hold children and has no content.
func (f *File) IsFolder() bool {
	return f.Type == TypeFolder
}

// ValidType reports whether t is one of folder, file or image.
func ValidType(t string) bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// MarshalJSON renders a root parentId as 0 instead of a zero ObjectID.
func (f File) MarshalJSON() ([]byte, error) {
	type plain File
	var parent any = f.ParentID
	if f.ParentID == RootID {
		parent = 0
	}
	return json.Marshal(struct {
		plain
		ParentID any `json:"parentId"`
	}{plain(f), parent})
}
