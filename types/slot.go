package types

import "mcproto/nbt"

// SlotData is the payload of an occupied inventory Slot: a numeric item
// id, a stack count, and an optional NBT compound carrying enchantments,
// display name overrides and the like.
type SlotData struct {
	ItemID int32
	Count  int8
	Tag    *nbt.Compound
}

// Slot is the wire representation of one inventory entry: a leading
// bool says whether an item is present at all, and only then do the
// item fields follow — absent slots encode to a single zero byte.
type Slot struct {
	Data *SlotData
}

func EmptySlot() Slot { return Slot{} }

func (w *Writer) WriteSlot(s Slot) {
	if s.Data == nil {
		w.WriteBool(false)
		return
	}
	w.WriteBool(true)
	w.WriteVarInt(s.Data.ItemID)
	w.WriteI8(s.Data.Count)
	if s.Data.Tag == nil {
		w.WriteByte(nbt.TagEnd)
		return
	}
	raw, err := nbt.EncodeUnnamed(s.Data.Tag)
	if err != nil {
		w.fail(err)
		return
	}
	w.WriteBytes(raw)
}

func (r *Reader) ReadSlot() Slot {
	present := r.ReadBool()
	if r.Err() != nil || !present {
		return EmptySlot()
	}
	id := r.ReadVarInt()
	count := r.ReadI8()
	tag, err := nbt.DecodeUnnamed(r.r)
	if err != nil {
		r.fail(err)
		return EmptySlot()
	}
	return Slot{Data: &SlotData{ItemID: id, Count: count, Tag: tag}}
}
