package sqlinline

const QEnsurePortalKV = `--sql 3c1d8e52-6a0f-4b7e-9d21-58f0a4c7b913
create table if not exists portal_kv (
  key text primary key,
  value text not null,
  updated_at timestamptz not null default now()
);
`

const QGetPortalKV = `--sql 8a4f2b17-c3d9-4e65-a1b0-7e92d5f6c048
select value
from portal_kv
where key = $1::text;
`

const QUpsertPortalKV = `--sql d27e9c41-5b8a-4f03-b6e1-0c4a9f37d825
insert into portal_kv(key, value, updated_at)
values ($1::text, $2::text, now())
on conflict (key) do update
set value = excluded.value, updated_at = now();
`

const QDeletePortalKV = `--sql 61b5f0a8-2e7c-4d94-8f3b-a9c6e1d07b52
delete from portal_kv
where key = $1::text;
`
